// Package verify checks that emitted declaration source is syntactically
// valid by parsing it with tree-sitter's C# grammar. Canonicalization bugs
// must surface as hard failures, never as silently malformed output.
package verify

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// Source parses src and returns an error describing the first syntax error
// found, or nil when the source is well-formed.
func Source(ctx context.Context, src []byte) error {
	parser := sitter.NewParser()
	parser.SetLanguage(csharp.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("verify: parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}
	if bad := firstError(root); bad != nil {
		return fmt.Errorf("verify: syntax error at line %d, column %d",
			bad.StartPoint().Row+1, bad.StartPoint().Column+1)
	}
	return fmt.Errorf("verify: syntax error")
}

// firstError finds the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
