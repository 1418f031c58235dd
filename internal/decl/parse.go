package decl

import "strings"

// GlobalPrefix is the root qualifier the synthesizer attaches to every
// dotted type reference. The rewriter strips it.
const GlobalPrefix = "global::"

// Qualify prefixes a dotted type name with the root qualifier. Keywords and
// bare identifiers ("int", "T") pass through unchanged.
func Qualify(name string) string {
	if name == "" || !strings.Contains(name, ".") || strings.HasPrefix(name, GlobalPrefix) {
		return name
	}
	return GlobalPrefix + name
}

// ParseTypeRef parses a rendered type reference ("global::System.String",
// "List<int>", "T[]") into its node form. Dots inside type-argument lists do
// not split segments.
func ParseTypeRef(s string) Node {
	segments := splitSegments(s)
	nodes := make([]Node, len(segments))
	for i, seg := range segments {
		nodes[i] = parseSegment(seg)
	}
	if len(nodes) == 1 {
		if _, prefixed := strings.CutPrefix(segments[0], GlobalPrefix); !prefixed {
			return nodes[0]
		}
	}
	return &QualifiedName{Segments: nodes}
}

// splitSegments splits on top-level dots only.
func splitSegments(s string) []string {
	var segments []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case '.':
			if depth == 0 {
				segments = append(segments, s[start:i])
				start = i + 1
			}
		}
	}
	return append(segments, s[start:])
}

func parseSegment(seg string) Node {
	open := strings.IndexByte(seg, '<')
	if open < 0 {
		return &IdentifierName{Tok: Token{Text: seg}}
	}
	closing := strings.LastIndexByte(seg, '>')
	if closing < open {
		return &IdentifierName{Tok: Token{Text: seg}}
	}
	name := seg[:open]
	var args []Node
	for _, arg := range splitArgs(seg[open+1 : closing]) {
		args = append(args, ParseTypeRef(strings.TrimSpace(arg)))
	}
	return &GenericName{
		Name: Token{Text: name},
		Args: &TypeArgList{Args: args},
	}
}

// splitArgs splits a type-argument list on top-level commas only.
func splitArgs(s string) []string {
	var args []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}
	return append(args, s[start:])
}
