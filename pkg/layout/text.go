package layout

import (
	"regexp"
	"strings"

	"github.com/strukto/strukto/pkg/controlflow"
)

// Fallback labels for missing or unrenderable text.
const (
	emptyBodyLabel   = "(empty)"
	noElseLabel      = "∅" // ∅, rendered centered in the empty else column
	defaultCondition = "condition"
	defaultSelector  = "selector"
	defaultCatch     = "catch"
)

// assignArrow replaces the assignment operator in rewritten statements.
const assignArrow = "←" // ←

var (
	// declTarget matches the left side of a declaration with
	// assignment: optional modifiers, a type (possibly generic or an
	// array) and the declared name. The name is captured.
	declTarget = regexp.MustCompile(`^(?:(?:public|private|protected|static|final|transient|volatile|synchronized)\s+)*[A-Za-z_$][\w$]*(?:\s*<[^=<>]*(?:<[^=<>]*>[^=<>]*)?>)?(?:\s*\[\s*\])*\s+([A-Za-z_$][\w$]*)$`)

	// assignTarget matches a plain assignment target: an identifier
	// optionally followed by member or array accesses.
	assignTarget = regexp.MustCompile(`^[A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*|\[[^\[\]]*\])*$`)
)

// terminators are the first tokens that classify a statement as
// flow-terminating. Matching is case-insensitive and purely syntactic.
var terminators = map[string]bool{
	"break":    true,
	"return":   true,
	"throw":    true,
	"continue": true,
	"yield":    true,
}

// NormalizeStatement cleans raw statement text for display: internal
// whitespace is collapsed, the text is trimmed and trailing semicolons
// are stripped. Declarations with assignment and plain assignments are
// rewritten to arrow form ("x ← expr"). The second return is false
// when nothing renderable remains.
//
// Both rewrites are syntactic heuristics over the cleaned text, not
// expression analysis; assignment-like text inside lambdas or string
// literals can be rewritten too. That matches the notation's intent of
// readable pseudo-code over exact source fidelity.
func NormalizeStatement(raw string) (string, bool) {
	text := strings.Join(strings.Fields(raw), " ")
	text = strings.TrimRight(text, ";")
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	if target, expr, ok := splitAssignment(text); ok {
		if m := declTarget.FindStringSubmatch(target); m != nil {
			return m[1] + " " + assignArrow + " " + expr, true
		}
		if assignTarget.MatchString(target) {
			return target + " " + assignArrow + " " + expr, true
		}
	}
	return text, true
}

// splitAssignment splits text at the first bare "=" that is not part of
// a comparison or compound operator. Go regexps have no lookaround, so
// the neighbor characters are checked directly.
func splitAssignment(text string) (target, expr string, ok bool) {
	for i := 1; i < len(text)-1; i++ {
		if text[i] != '=' {
			continue
		}
		if strings.IndexByte("=!<>+-*/%&|^", text[i-1]) >= 0 || text[i+1] == '=' {
			continue
		}
		target = strings.TrimSpace(text[:i])
		expr = strings.TrimSpace(text[i+1:])
		if target == "" || expr == "" {
			return "", "", false
		}
		return target, expr, true
	}
	return "", "", false
}

// IsTerminating reports whether a normalized statement terminates the
// enclosing flow. Classification looks at the first token only; it is
// a syntactic approximation, not control-flow analysis.
func IsTerminating(text string) bool {
	token := strings.ToLower(firstToken(text))
	return terminators[token]
}

func firstToken(text string) string {
	text = strings.TrimSpace(text)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' || c == '(' || c == ';' {
			return text[:i]
		}
	}
	return text
}

// MethodDeclaration assembles the diagram title from method metadata:
// visibility, static marker, return type, name and parameter list.
// When structured parameter data is absent it falls back to pulling
// name and parameters out of the raw signature string.
func MethodDeclaration(m *controlflow.Method) string {
	name := m.Name
	params := ""

	switch {
	case len(m.Params) > 0:
		parts := make([]string, len(m.Params))
		for i, p := range m.Params {
			parts[i] = strings.TrimSpace(p.Type + " " + p.Name)
		}
		params = strings.Join(parts, ", ")
	case m.Signature != "":
		if open := strings.IndexByte(m.Signature, '('); open >= 0 {
			if name == "" {
				name = strings.TrimSpace(m.Signature[:open])
			}
			params = strings.TrimSuffix(strings.TrimSpace(m.Signature[open+1:]), ")")
		} else if name == "" {
			name = strings.TrimSpace(m.Signature)
		}
	}

	var sb strings.Builder
	if m.Visibility != "" {
		sb.WriteString(m.Visibility)
		sb.WriteByte(' ')
	}
	if m.Static {
		sb.WriteString("static ")
	}
	if m.ReturnType != "" {
		sb.WriteString(m.ReturnType)
		sb.WriteByte(' ')
	}
	sb.WriteString(name)
	sb.WriteByte('(')
	sb.WriteString(params)
	sb.WriteByte(')')
	return sb.String()
}
