package domain

import (
	"sort"
	"strings"
)

// PathNode is one node in the path tree rendered for the file-tree
// placeholder. Directory nodes group their children; file nodes are leaves.
type PathNode struct {
	Name     string
	IsDir    bool
	Children []*PathNode
}

// BuildPathTree arranges item keys into a nested path tree. Fragments are
// stripped, duplicates collapse, and keys already covered by a selected
// ancestor folder (a key ending in "/") are omitted. Children are sorted
// directories first, then lexicographically.
func BuildPathTree(keys []string) *PathNode {
	// Selected folders, so covered descendants can be dropped.
	var folders []string
	for _, key := range keys {
		if strings.HasSuffix(key, "/") {
			folders = append(folders, key)
		}
	}

	root := &PathNode{IsDir: true}
	seen := make(map[string]bool)

	for _, key := range keys {
		key = BaseKey(key)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true

		covered := false
		for _, folder := range folders {
			if key != folder && strings.HasPrefix(key, folder) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}

		isDir := strings.HasSuffix(key, "/")
		segments := strings.Split(strings.TrimSuffix(key, "/"), "/")
		node := root
		for i, segment := range segments {
			dir := isDir || i < len(segments)-1
			node = node.child(segment, dir)
		}
	}

	root.sortChildren()
	return root
}

func (n *PathNode) child(name string, isDir bool) *PathNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &PathNode{Name: name, IsDir: isDir}
	n.Children = append(n.Children, c)
	return c
}

func (n *PathNode) sortChildren() {
	sort.Slice(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})
	for _, c := range n.Children {
		c.sortChildren()
	}
}

// Render draws the tree with box-drawing glyphs, directories suffixed
// with "/".
func (n *PathNode) Render() string {
	var sb strings.Builder
	n.render(&sb, "")
	return sb.String()
}

func (n *PathNode) render(sb *strings.Builder, prefix string) {
	for i, c := range n.Children {
		last := i == len(n.Children)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(c.Name)
		if c.IsDir {
			sb.WriteString("/")
		}
		sb.WriteString("\n")
		c.render(sb, prefix+indent)
	}
}
