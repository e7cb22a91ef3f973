package reporting

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type stackTracer interface {
	Stack() []byte
}

// FormatTraceback renders err, its chain of causes and, when one of them
// recorded it, the goroutine stack of a recovered panic.
func FormatTraceback(err error) string {
	if err == nil {
		return "<nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%T: %v\n", err, err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(&b, "caused by %T: %v\n", cause, cause)
	}

	if stack := findStack(err); len(stack) > 0 {
		b.WriteString("\n")
		b.Write(stack)
	}

	return strings.TrimRight(b.String(), "\n")
}

func findStack(err error) []byte {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok && len(st.Stack()) > 0 {
			return st.Stack()
		}
	}
	return nil
}

var wordBoundary = regexp.MustCompile(`[A-Z][a-z]*`)

// Humanize turns a CamelCase error kind into a title, e.g. "BadArgument"
// becomes "Bad Argument".
func Humanize(kind string) string {
	title := strings.Join(wordBoundary.FindAllString(kind, -1), " ")
	// Reply embeds always carry a title.
	if title == "" {
		return "Error"
	}
	return title
}

var markdownChars = regexp.MustCompile("([\\\\*_~|`>])")

// EscapeMarkdown backslash-escapes characters Discord treats as formatting.
func EscapeMarkdown(s string) string {
	return markdownChars.ReplaceAllString(s, `\$1`)
}
