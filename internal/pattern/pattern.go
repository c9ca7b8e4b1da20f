// Package pattern converts between literal step text and parameterized
// step patterns using the {int}, {float} and {string} placeholder tokens.
package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder token types. These are the only three tokens produced or
// consumed anywhere in the tool.
const (
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeString = "string"
)

var (
	floatRe  = regexp.MustCompile(`\b\d+\.\d+\b`)
	intRe    = regexp.MustCompile(`\b\d+\b`)
	quotedRe = regexp.MustCompile(`"[^"]*"|'[^']*'`)

	// Only these exact tokens are placeholders. Arbitrary braces in step
	// text stay literal.
	placeholderRe = regexp.MustCompile(`\{(int|float|string)\}`)
)

// Parameterize replaces literal values in step text with typed placeholders.
// Floats are replaced before integers so a float is never partially consumed
// by the integer rule, then quoted substrings become {string}.
func Parameterize(text string) string {
	out := floatRe.ReplaceAllString(text, "{float}")
	out = intRe.ReplaceAllString(out, "{int}")
	out = quotedRe.ReplaceAllString(out, "{string}")
	return out
}

// ParameterNames walks the placeholders of a pattern left to right and
// assigns a name per placeholder, disambiguating repeats of the same type
// ("int", "int2", "int3", ...).
func ParameterNames(pat string) []string {
	var names []string
	counts := make(map[string]int)
	for _, m := range placeholderRe.FindAllStringSubmatch(pat, -1) {
		typ := m[1]
		counts[typ]++
		if counts[typ] == 1 {
			names = append(names, typ)
		} else {
			names = append(names, typ+strconv.Itoa(counts[typ]))
		}
	}
	return names
}

// Matcher is a compiled, anchored matching rule for one step pattern.
type Matcher struct {
	pattern string
	types   []string
	re      *regexp.Regexp
}

// Compile builds an anchored matcher for a step pattern. Literal segments
// are quoted so regex metacharacters (and any braces that are not one of
// the three placeholder tokens) match themselves.
func Compile(pat string) *Matcher {
	var sb strings.Builder
	sb.WriteString("^")
	var types []string
	last := 0
	for _, loc := range placeholderRe.FindAllStringSubmatchIndex(pat, -1) {
		sb.WriteString(regexp.QuoteMeta(pat[last:loc[0]]))
		typ := pat[loc[2]:loc[3]]
		types = append(types, typ)
		switch typ {
		case TypeFloat:
			sb.WriteString(`(\d+\.\d+)`)
		case TypeInt:
			sb.WriteString(`(\d+)`)
		case TypeString:
			sb.WriteString(`("[^"]*"|'[^']*')`)
		}
		last = loc[1]
	}
	sb.WriteString(regexp.QuoteMeta(pat[last:]))
	sb.WriteString("$")

	return &Matcher{
		pattern: pat,
		types:   types,
		re:      regexp.MustCompile(sb.String()),
	}
}

// Pattern returns the pattern this matcher was compiled from.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Types returns the placeholder types in pattern order.
func (m *Matcher) Types() []string {
	return m.types
}

// Match reports whether the literal text matches the full pattern.
// Matching is anchored: the pattern must cover the whole string.
func (m *Matcher) Match(text string) bool {
	return m.re.MatchString(text)
}

// Capture returns the literal substrings at each placeholder position, or
// false when the text does not match.
func (m *Matcher) Capture(text string) ([]string, bool) {
	sub := m.re.FindStringSubmatch(text)
	if sub == nil {
		return nil, false
	}
	return sub[1:], true
}

// Args matches the text and parses the captured substrings into typed
// values: float64 for {float}, int for {int}, and the unquoted content for
// {string}. Float parsing runs before int parsing, mirroring Parameterize.
func (m *Matcher) Args(text string) ([]any, bool) {
	raw, ok := m.Capture(text)
	if !ok {
		return nil, false
	}
	args := make([]any, len(raw))
	for i, r := range raw {
		switch m.types[i] {
		case TypeFloat:
			f, err := strconv.ParseFloat(r, 64)
			if err != nil {
				return nil, false
			}
			args[i] = f
		case TypeInt:
			n, err := strconv.Atoi(r)
			if err != nil {
				return nil, false
			}
			args[i] = n
		case TypeString:
			args[i] = Unquote(r)
		}
	}
	return args, true
}

// Unquote strips one level of matching single or double quotes.
func Unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
