package application

import (
	"time"

	"github.com/sglre6355/basebot/internal/modules/core/domain"
)

// PingInteractor handles the ping use case.
type PingInteractor struct {
	latency func() time.Duration
}

// NewPingInteractor creates a new PingInteractor measuring with latency.
func NewPingInteractor(latency func() time.Duration) *PingInteractor {
	return &PingInteractor{latency: latency}
}

// Execute performs the ping operation and returns the result.
func (p *PingInteractor) Execute() *domain.PingResult {
	return domain.NewPingResult(p.latency())
}

// UptimeInteractor handles the uptime use case.
type UptimeInteractor struct {
	startedAt func() time.Time
	now       func() time.Time
}

// NewUptimeInteractor creates a new UptimeInteractor.
func NewUptimeInteractor(startedAt func() time.Time) *UptimeInteractor {
	return &UptimeInteractor{startedAt: startedAt, now: time.Now}
}

// Execute returns the current uptime.
func (u *UptimeInteractor) Execute() *domain.UptimeResult {
	return domain.NewUptimeResult(u.startedAt(), u.now())
}
