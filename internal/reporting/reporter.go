package reporting

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"

	"github.com/sglre6355/basebot/internal/command"
)

const genericErrorDescription = "An unknown error has occurred and my developer has been notified of it."

// Sink delivers a batch of report blocks to the logging destination.
type Sink interface {
	Send(blocks []*discordgo.MessageEmbed) error
}

// Reporter turns errors into report blocks and delivers them to a Sink.
// It keeps no state between reports.
type Reporter struct {
	sink Sink
}

// NewReporter creates a new Reporter delivering to sink.
func NewReporter(sink Sink) *Reporter {
	return &Reporter{sink: sink}
}

// ReportUnhandledEvent reports an error that escaped an event handler. The
// report is delivered as one batch; delivery failures are only logged.
func (r *Reporter) ReportUnhandledEvent(event string, err error) {
	contextBlock := newBlock("Context", field("Event", event))

	blocks := tracebackFor(err, contextBlock)
	blocks = append(blocks, contextBlock)

	r.deliver(blocks, "event", event)
}

// ReportCommandError handles an error raised by a command invocation.
//
// Unknown commands are ignored. Expected errors are shown to the invoking
// user. Anything else gets a generic notice for the user and a detailed report
// for the developer. The returned error is a failed reply that was not
// suppressed; it is returned only after the report was attempted.
func (r *Reporter) ReportCommandError(ctx *command.Context, err error) error {
	if err == nil || command.IsNotFound(err) {
		return nil
	}

	var invokeErr *command.InvokeError
	var cmdErr *command.Error
	if !errors.As(err, &invokeErr) && errors.As(err, &cmdErr) {
		if err := ctx.SendEmbed(newBlock(Humanize(cmdErr.Kind), cmdErr.Message)); err != nil {
			return fmt.Errorf("failed to send error reply: %w", err)
		}
		return nil
	}

	replyErr := ctx.SendEmbed(newBlock("Error", genericErrorDescription))
	if IsGoneOrForbidden(replyErr) {
		replyErr = nil
	}

	contextBlocks := ContextBlocks(ctx)
	blocks := tracebackFor(err, contextBlocks...)
	blocks = append(blocks, contextBlocks...)

	attrs := []any{"command", ctx.InvokedWith}
	if ctx.Message != nil {
		attrs = append(attrs, "message_id", ctx.Message.ID, "channel_id", ctx.Message.ChannelID)
	}
	r.deliver(blocks, attrs...)

	if replyErr != nil {
		return fmt.Errorf("failed to send error notice: %w", replyErr)
	}
	return nil
}

// deliver sends blocks in a single batch. It never panics or returns an error.
func (r *Reporter) deliver(blocks []*discordgo.MessageEmbed, attrs ...any) {
	defer func() {
		if rc := recover(); rc != nil {
			slog.Error("recovered from panic while delivering error report",
				append(attrs, "panic", rc, "stack_trace", string(debug.Stack()))...)
		}
	}()

	if err := r.sink.Send(blocks); err != nil {
		slog.Error("failed to deliver error report", append(attrs, "error", err)...)
		return
	}
	slog.Debug("delivered error report", append(attrs, "blocks", len(blocks))...)
}

// tracebackFor builds the traceback blocks for err within what the given
// context blocks leave of the batch limits.
func tracebackFor(err error, contextBlocks ...*discordgo.MessageEmbed) []*discordgo.MessageEmbed {
	budget := MaxBatchLength
	for _, b := range contextBlocks {
		budget -= blockLength(b)
	}
	return TracebackBlocks(FormatTraceback(err), MaxBatchBlocks-len(contextBlocks), budget)
}

// IsGoneOrForbidden reports whether err is a REST failure because the target
// no longer exists or the bot lacks permission.
func IsGoneOrForbidden(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return false
	}
	switch restErr.Response.StatusCode {
	case http.StatusNotFound, http.StatusForbidden:
		return true
	default:
		return false
	}
}
