package debug

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
)

const colorDebug = 0x95A5A6

// Stats is a snapshot of the process and gateway state.
type Stats struct {
	GoVersion  string
	Goroutines int
	HeapAlloc  uint64
	StartedAt  time.Time
	Guilds     int
	Latency    time.Duration
}

func collectStats(s *discordgo.Session, startedAt time.Time) Stats {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := Stats{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
		HeapAlloc:  mem.HeapAlloc,
		StartedAt:  startedAt,
	}
	if s != nil {
		stats.Latency = s.HeartbeatLatency()
		if s.State != nil {
			s.State.RLock()
			stats.Guilds = len(s.State.Guilds)
			s.State.RUnlock()
		}
	}
	return stats
}

// Embed renders the snapshot.
func (s Stats) Embed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Debug",
		Color: colorDebug,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Go", Value: s.GoVersion, Inline: true},
			{Name: "Goroutines", Value: humanize.Comma(int64(s.Goroutines)), Inline: true},
			{Name: "Heap", Value: humanize.IBytes(s.HeapAlloc), Inline: true},
			{Name: "Started", Value: humanize.Time(s.StartedAt), Inline: true},
			{Name: "Guilds", Value: humanize.Comma(int64(s.Guilds)), Inline: true},
			{Name: "Latency", Value: fmt.Sprintf("%dms", s.Latency.Milliseconds()), Inline: true},
		},
	}
}
