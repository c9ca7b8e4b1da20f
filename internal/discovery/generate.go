package discovery

import (
	"fmt"
	"strings"
	"unicode"

	"stepcov/internal/domain"
)

// maxSkeletonName bounds generated handler names.
const maxSkeletonName = 48

// Generator renders skeleton step implementations for missing usages.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// skeletonName derives a deterministic handler name from literal step text:
// lower-cased, non-alphanumerics stripped, whitespace collapsed to
// underscores, truncated.
func skeletonName(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	name := strings.Join(strings.Fields(b.String()), "_")
	if name == "" {
		name = "step"
	}
	if len(name) > maxSkeletonName {
		name = strings.TrimRight(name[:maxSkeletonName], "_")
	}
	return name
}

// Skeleton emits one stub handler for a missing step. The stub returns a
// "not implemented" error carrying the original literal text.
func (g *Generator) Skeleton(keyword, suggested, literal string) string {
	name := skeletonName(literal)
	return fmt.Sprintf(`func %s(w harness.Wrapper, args registry.Args) error {
	return registry.Pending(%q)
}
`, name, literal)
}

// Render emits skeleton handlers plus a registration function for every
// missing step. Duplicate (keyword, pattern) suggestions collapse into one
// skeleton; handler name collisions get a numeric suffix. With grouped set,
// output is ordered by source feature file with a leading comment naming
// the file; otherwise it is flattened.
func (g *Generator) Render(missing []domain.MissingStep, grouped bool) string {
	type stub struct {
		file    string
		keyword string
		pattern string
		literal string
		name    string
	}

	seen := make(map[string]bool)
	names := make(map[string]int)
	var stubs []stub
	for _, m := range missing {
		key := m.Usage.Keyword + " " + m.SuggestedPattern
		if seen[key] {
			continue
		}
		seen[key] = true

		name := skeletonName(m.Usage.Text)
		names[name]++
		if n := names[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		stubs = append(stubs, stub{
			file:    m.Usage.FeatureFile,
			keyword: m.Usage.Keyword,
			pattern: m.SuggestedPattern,
			literal: m.Usage.Text,
			name:    name,
		})
	}
	if len(stubs) == 0 {
		return ""
	}

	var sb strings.Builder
	lastFile := ""
	for _, s := range stubs {
		if grouped && s.file != lastFile {
			fmt.Fprintf(&sb, "// %s\n\n", s.file)
			lastFile = s.file
		}
		fmt.Fprintf(&sb, `func %s(w harness.Wrapper, args registry.Args) error {
	return registry.Pending(%q)
}

`, s.name, s.literal)
	}

	sb.WriteString("func registerMissingSteps(r *registry.Registry) {\n")
	lastFile = ""
	for _, s := range stubs {
		if grouped && s.file != lastFile {
			fmt.Fprintf(&sb, "\t// %s\n", s.file)
			lastFile = s.file
		}
		fmt.Fprintf(&sb, "\tr.MustRegister(%q, %q, %s)\n", registryKeyword(s.keyword), s.pattern, s.name)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// registryKeyword maps And/But usages onto Given for registration, since
// definitions are declared under the three primary keywords only.
func registryKeyword(kw string) string {
	switch kw {
	case domain.KeywordAnd, domain.KeywordBut:
		return domain.KeywordGiven
	default:
		return kw
	}
}
