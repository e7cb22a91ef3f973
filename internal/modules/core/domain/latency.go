package domain

import (
	"fmt"
	"time"
)

// PingResult represents the result of a ping operation.
type PingResult struct {
	Latency time.Duration
}

// NewPingResult creates a new PingResult for the measured gateway latency.
func NewPingResult(latency time.Duration) *PingResult {
	return &PingResult{Latency: latency}
}

// Message returns the reply shown to the user.
func (r *PingResult) Message() string {
	if r.Latency <= 0 {
		return "Pong! (latency unknown)"
	}
	return fmt.Sprintf("Pong! %dms", r.Latency.Milliseconds())
}
