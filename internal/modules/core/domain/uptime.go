package domain

import (
	"fmt"
	"strings"
	"time"
)

// UptimeResult represents how long the bot has been running.
type UptimeResult struct {
	StartedAt time.Time
	Uptime    time.Duration
}

// NewUptimeResult computes the uptime between startedAt and now.
func NewUptimeResult(startedAt, now time.Time) *UptimeResult {
	uptime := now.Sub(startedAt)
	if uptime < 0 {
		uptime = 0
	}
	return &UptimeResult{StartedAt: startedAt, Uptime: uptime}
}

// Message returns the reply shown to the user.
func (r *UptimeResult) Message() string {
	return "Uptime: " + FormatDuration(r.Uptime)
}

// FormatDuration renders d as days, hours, minutes and seconds, omitting
// leading zero units.
func FormatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d / time.Second

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if days > 0 || hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if days > 0 || hours > 0 || minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
