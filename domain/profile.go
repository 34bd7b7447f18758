package domain

import (
	"fmt"
	"sort"
	"strings"
)

// ProfileKind discriminates the two profile representations.
type ProfileKind string

const (
	// ProfileKindMarkdown is a sectioned markdown summary produced by the
	// extractor.
	ProfileKindMarkdown ProfileKind = "markdown"
	// ProfileKindFacts is a flat key/value fact map supplied directly by
	// an external editor.
	ProfileKindFacts ProfileKind = "facts"
)

// Profile is the extracted description of a user. It carries exactly one
// of two representations; both normalize to prompt text through
// PromptText, so the persona compiler does not care which one it gets.
type Profile struct {
	Kind     ProfileKind       `json:"kind"`
	Markdown string            `json:"markdown,omitempty"`
	Facts    map[string]string `json:"facts,omitempty"`
}

// MarkdownProfile wraps extractor output in a profile.
func MarkdownProfile(summary string) *Profile {
	return &Profile{Kind: ProfileKindMarkdown, Markdown: summary}
}

// FactsProfile wraps a structured fact map in a profile.
func FactsProfile(facts map[string]string) *Profile {
	return &Profile{Kind: ProfileKindFacts, Facts: facts}
}

// Empty reports whether the profile carries no usable content.
func (p *Profile) Empty() bool {
	if p == nil {
		return true
	}
	switch p.Kind {
	case ProfileKindFacts:
		return len(p.Facts) == 0
	default:
		return strings.TrimSpace(p.Markdown) == ""
	}
}

// PromptText normalizes the profile into the text handed to the persona
// compiler. Fact maps are rendered as sorted "key: value" lines so the
// output is stable across calls.
func (p *Profile) PromptText() string {
	if p == nil {
		return ""
	}
	switch p.Kind {
	case ProfileKindFacts:
		keys := make([]string, 0, len(p.Facts))
		for k := range p.Facts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, p.Facts[k])
		}
		return b.String()
	default:
		return strings.TrimSpace(p.Markdown)
	}
}
