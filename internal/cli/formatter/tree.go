package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeNode is one line of a tree display. Children are rendered below their
// parent in slice order.
type TreeNode struct {
	Label    string
	Badge    string
	Detail   string
	Children []*TreeNode
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

type treeLine struct {
	content string
	detail  string
}

// RenderTree renders root nodes and their subtrees with box-drawing
// connectors. Details are right-aligned in a shared column.
func RenderTree(roots []*TreeNode) string {
	var lines []treeLine
	var walk func(n *TreeNode, indent string, depth int, last bool)
	walk = func(n *TreeNode, indent string, depth int, last bool) {
		prefix, childIndent := "", ""
		if depth > 0 {
			prefix = indent + treeBranch
			childIndent = indent + treePipe
			if last {
				prefix = indent + treeCorner
				childIndent = indent + treeBlank
			}
		}
		content := prefix + n.Label
		if n.Badge != "" {
			content = prefix + n.Badge + " " + n.Label
		}
		lines = append(lines, treeLine{content: content, detail: n.Detail})
		for i, c := range n.Children {
			walk(c, childIndent, depth+1, i == len(n.Children)-1)
		}
	}
	for _, r := range roots {
		walk(r, "", 0, true)
	}

	width := 0
	for _, l := range lines {
		width = max(width, lipgloss.Width(l.content))
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.content)
		if l.detail != "" {
			b.WriteString(strings.Repeat(" ", width-lipgloss.Width(l.content)+colGap))
			b.WriteString(StyleBlue.Render("[ " + l.detail + " ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
