package reporting

import (
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// ColorError is the embed color used for every report block.
const ColorError = 0xE74C3C

// Discord limits for a single webhook message.
const (
	MaxDescriptionLength = 4096
	MaxBatchBlocks       = 10
	MaxBatchLength       = 6000
)

const (
	tracebackTitle          = "Traceback"
	tracebackContinuedTitle = "Traceback (continued)"
	tracebackTruncatedTitle = "Traceback (truncated)"

	fenceOpen  = "```go\n"
	fenceClose = "\n```"
)

func newBlock(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       ColorError,
	}
}

// blockLength counts the characters Discord charges against the batch limit.
func blockLength(block *discordgo.MessageEmbed) int {
	n := utf8.RuneCountInString(block.Title) + utf8.RuneCountInString(block.Description)
	for _, f := range block.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	return n
}

// TracebackBlocks splits trace into code-fenced blocks. At most maxBlocks
// blocks are produced and their combined length stays within budget; when the
// trace does not fit, the last block is titled as truncated.
func TracebackBlocks(trace string, maxBlocks, budget int) []*discordgo.MessageEmbed {
	// A trace may not close the fence early.
	trace = strings.ReplaceAll(trace, "```", "`\u200b``")
	if trace == "" {
		trace = "<no traceback>"
	}

	overhead := utf8.RuneCountInString(fenceOpen) + utf8.RuneCountInString(fenceClose)
	titleLen := utf8.RuneCountInString(tracebackTruncatedTitle)
	chunkSize := MaxDescriptionLength - overhead

	runes := []rune(trace)
	var blocks []*discordgo.MessageEmbed
	for len(runes) > 0 && len(blocks) < maxBlocks {
		room := budget - titleLen - overhead
		if room <= 0 {
			break
		}
		size := min(chunkSize, room, len(runes))

		title := tracebackTitle
		if len(blocks) > 0 {
			title = tracebackContinuedTitle
		}
		blocks = append(blocks, newBlock(title, fenceOpen+string(runes[:size])+fenceClose))

		runes = runes[size:]
		budget -= titleLen + overhead + size
	}

	if len(runes) > 0 && len(blocks) > 0 {
		blocks[len(blocks)-1].Title = tracebackTruncatedTitle
	}
	return blocks
}

// truncate shortens s to at most limit characters, marking the cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	const marker = "…"
	runes := []rune(s)
	return string(runes[:limit-utf8.RuneCountInString(marker)]) + marker
}
