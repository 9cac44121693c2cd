package tabs

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var customIDRe = regexp.MustCompile(`\[?\{ ?#(\S+) ?\}\]?`)

// toLower lower-cases s. A Caser is stateful, so each call gets its own.
func toLower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// GenerateID returns an 8 character opaque identifier.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// parsedTitle is a tab title with its markers separated out.
type parsedTitle struct {
	name         string
	customAnchor string
	selected     bool
}

func parseTitle(raw string) parsedTitle {
	var p parsedTitle
	pure := raw
	if m := customIDRe.FindStringSubmatchIndex(raw); m != nil {
		p.customAnchor = raw[m[2]:m[3]]
		pure = raw[:m[0]] + raw[m[1]:]
	}
	if strings.Contains(pure, ActiveTabText) {
		p.selected = true
		pure = strings.Replace(pure, ActiveTabText, "", 1)
	}
	p.name = strings.TrimSpace(pure)
	return p
}

// rawID is the custom anchor when present, otherwise the display name.
func (p parsedTitle) rawID() string {
	if p.customAnchor != "" {
		return p.customAnchor
	}
	return p.name
}

// DisplayName returns the title with markers stripped and whitespace trimmed.
func DisplayName(rawTitle string) string {
	return parseTitle(rawTitle).name
}

// IsSelected reports whether the title carries the {selected} marker.
func IsSelected(rawTitle string) bool {
	return strings.Contains(rawTitle, ActiveTabText)
}

// TabKey returns the lower-cased, URL-encoded raw id of a title. It does not
// depend on slug disambiguation, so equal titles always share a key.
func TabKey(rawTitle string) string {
	return toLower(encodeURIComponent(parseTitle(rawTitle).rawID()))
}

// Slugger produces unique, human-readable slugs. Colliding slugs get a
// numeric suffix: "c", "c-1", "c-2".
type Slugger struct {
	occurrences map[string]int
}

// NewSlugger returns an empty Slugger.
func NewSlugger() *Slugger {
	return &Slugger{occurrences: make(map[string]int)}
}

// Slug normalizes value and disambiguates it against earlier results.
func (s *Slugger) Slug(value string) string {
	return s.unique(slugify(value))
}

// Reserve disambiguates value without normalizing it.
func (s *Slugger) Reserve(value string) string {
	return s.unique(value)
}

func (s *Slugger) unique(base string) string {
	result := base
	for {
		if _, taken := s.occurrences[result]; !taken {
			break
		}
		s.occurrences[base]++
		result = fmt.Sprintf("%s-%d", base, s.occurrences[base])
	}
	s.occurrences[result] = 0
	return result
}

// TabID returns the slug id of a tab title within one run. A custom anchor
// is used verbatim as the base.
func (s *Slugger) TabID(rawTitle string) string {
	p := parseTitle(rawTitle)
	if p.customAnchor != "" {
		return s.Reserve(p.customAnchor)
	}
	return s.Slug(p.name)
}

// slugify lower-cases value, drops punctuation and symbols and turns spaces
// into dashes.
func slugify(value string) string {
	var sb strings.Builder
	for _, r := range toLower(value) {
		switch {
		case r == ' ':
			sb.WriteByte('-')
		case r == '-' || r == '_':
			sb.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r):
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// encodeURIComponent escapes everything except A-Z a-z 0-9 - _ . ! ~ * ' ( ).
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
