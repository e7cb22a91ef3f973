package bot

import (
	"regexp"
	"strings"
)

// ResolvePrefix returns the prefix content starts with: staticPrefix, or a
// mention of selfID followed by a space, compared case-insensitively. The
// matched candidate is returned as defined, not as typed. When nothing
// matches, staticPrefix is returned.
func ResolvePrefix(staticPrefix, selfID, content string) string {
	return NewPrefixResolver(staticPrefix, selfID).Resolve(content)
}

func prefixCandidates(staticPrefix, selfID string) []string {
	return []string{staticPrefix, "<@" + selfID + "> ", "<@!" + selfID + "> "}
}

// PrefixResolver resolves prefixes for one bot account.
type PrefixResolver struct {
	static     string
	selfID     string
	candidates []string
	// matcher is nil when the candidates do not form a valid pattern, e.g. a
	// static prefix that is not valid UTF-8.
	matcher *regexp.Regexp
}

// NewPrefixResolver compiles the prefix matcher for staticPrefix and the bot
// user selfID.
func NewPrefixResolver(staticPrefix, selfID string) *PrefixResolver {
	p := &PrefixResolver{
		static:     staticPrefix,
		selfID:     selfID,
		candidates: prefixCandidates(staticPrefix, selfID),
	}

	groups := make([]string, len(p.candidates))
	for i, c := range p.candidates {
		groups[i] = "(" + regexp.QuoteMeta(c) + ")"
	}
	if re, err := regexp.Compile(`(?i)^(?:` + strings.Join(groups, "|") + `)`); err == nil {
		p.matcher = re
	}
	return p
}

// match returns the candidate content starts with and where the matched text
// ends.
func (p *PrefixResolver) match(content string) (string, int, bool) {
	if p.matcher == nil {
		for _, c := range p.candidates {
			if len(content) >= len(c) && strings.EqualFold(content[:len(c)], c) {
				return c, len(c), true
			}
		}
		return p.static, 0, false
	}

	match := p.matcher.FindStringSubmatchIndex(content)
	if match == nil {
		return p.static, 0, false
	}
	for i, c := range p.candidates {
		if match[2*(i+1)] >= 0 {
			return c, match[1], true
		}
	}
	return p.static, 0, false
}

// Resolve returns the prefix for a message with the given content.
func (p *PrefixResolver) Resolve(content string) string {
	prefix, _, _ := p.match(content)
	return prefix
}

// Strip splits content into the matched prefix and the text after it.
func (p *PrefixResolver) Strip(content string) (prefix, rest string, ok bool) {
	prefix, end, ok := p.match(content)
	if !ok {
		return prefix, content, false
	}
	return prefix, content[end:], true
}

// Current returns the prefix to advertise when there is no message to
// resolve against.
func (p *PrefixResolver) Current() string {
	return p.Resolve("")
}

// IsBareMention reports whether content is exactly a mention of the bot.
func (p *PrefixResolver) IsBareMention(content string) bool {
	return content == "<@"+p.selfID+">" || content == "<@!"+p.selfID+">"
}
