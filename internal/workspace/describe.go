package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/inkpad/internal/domain/entity"
)

// DescribeTree renders the current layout as an indented text tree, one
// node per line. Tab titles are resolved through the document provider
// when one is configured.
func (s *Store) DescribeTree(ctx context.Context) string {
	s.mu.Lock()
	root := s.root
	active := s.activePaneID
	s.mu.Unlock()

	var b strings.Builder
	s.describeNode(ctx, &b, root, active, 0)
	return b.String()
}

func (s *Store) describeNode(ctx context.Context, b *strings.Builder, node *entity.PaneNode, active entity.PaneID, depth int) {
	indent := strings.Repeat("  ", depth)

	if node.IsSplit() {
		fmt.Fprintf(b, "%ssplit %s %s (ratio %.2f)\n",
			indent, describeDirection(node.SplitDir), node.ID, node.SplitRatio)
		for _, child := range node.Children {
			s.describeNode(ctx, b, child, active, depth+1)
		}
		return
	}

	marker := ""
	if node.ID == active {
		marker = " *"
	}
	fmt.Fprintf(b, "%spane %s (%d tabs)%s\n", indent, node.ID, len(node.Tabs), marker)

	for _, tab := range node.Tabs {
		activeMark := " "
		if tab.ID == node.ActiveTabID {
			activeMark = ">"
		}
		pinned := ""
		if tab.IsPinned {
			pinned = " [pinned]"
		}
		fmt.Fprintf(b, "%s  %s %s%s\n", indent, activeMark, s.describeTab(ctx, tab), pinned)
	}
}

func (s *Store) describeTab(ctx context.Context, tab *entity.Tab) string {
	if s.documents != nil {
		if title, ok := s.documents.Title(ctx, tab.DocumentID); ok {
			return title
		}
	}
	return string(tab.DocumentID)
}

func describeDirection(dir entity.SplitDirection) string {
	switch dir {
	case entity.SplitHorizontal:
		return "horizontal"
	case entity.SplitVertical:
		return "vertical"
	default:
		return "none"
	}
}
