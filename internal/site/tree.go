package site

import (
	"fmt"
	"html"
	"path"
	"sort"
	"strings"
)

// FileTree is one node of the sidebar navigation.
type FileTree struct {
	Name     string
	Title    string // Page title for files, formatted name for directories.
	Path     string // Source path for files, directory path for dirs.
	Href     string // Page path relative to the site root (files only).
	IsDir    bool
	Children []*FileTree
}

// BuildTree constructs a FileTree from the built pages.
func BuildTree(pages []Page) *FileTree {
	root := &FileTree{IsDir: true}

	for _, p := range pages {
		parts := strings.Split(p.Source, "/")
		current := root
		for i, part := range parts {
			if i == len(parts)-1 {
				current.Children = append(current.Children, &FileTree{
					Name:  part,
					Title: p.Title,
					Path:  p.Source,
					Href:  p.Output,
				})
				break
			}
			current = current.dir(part, strings.Join(parts[:i+1], "/"))
		}
	}

	sortTree(root)
	return root
}

func (t *FileTree) dir(name, dirPath string) *FileTree {
	for _, child := range t.Children {
		if child.IsDir && child.Name == name {
			return child
		}
	}
	node := &FileTree{Name: name, Title: formatDirName(name), Path: dirPath, IsDir: true}
	t.Children = append(t.Children, node)
	return node
}

// sortTree recursively sorts tree children: directories first, then files, alphabetically.
func sortTree(node *FileTree) {
	sort.Slice(node.Children, func(i, j int) bool {
		if node.Children[i].IsDir != node.Children[j].IsDir {
			return node.Children[i].IsDir
		}
		return node.Children[i].Name < node.Children[j].Name
	})
	for _, child := range node.Children {
		if child.IsDir {
			sortTree(child)
		}
	}
}

// ToHTML renders the tree as nested <ul><li> HTML for the sidebar.
// basePath is the relative prefix back to the site root, activePath the
// source path of the current page.
func (t *FileTree) ToHTML(activePath, basePath string) string {
	var b strings.Builder
	renderChildren(&b, t, activePath, basePath)
	return b.String()
}

func renderChildren(b *strings.Builder, node *FileTree, activePath, basePath string) {
	if len(node.Children) == 0 {
		return
	}
	b.WriteString("<ul>\n")
	for _, child := range node.Children {
		if child.IsDir {
			fmt.Fprintf(b, `<li class="dir"><span class="dir-toggle">%s</span>`+"\n", html.EscapeString(child.Title))
			renderChildren(b, child, activePath, basePath)
			b.WriteString("</li>\n")
			continue
		}
		activeClass := ""
		if child.Path == activePath {
			activeClass = ` class="active"`
		}
		fmt.Fprintf(b, `<li class="file"><a href="%s"%s>%s</a></li>`+"\n",
			html.EscapeString(basePath+child.Href), activeClass, html.EscapeString(child.Title))
	}
	b.WriteString("</ul>\n")
}

// basePathFor returns the relative prefix from a page back to the site root.
func basePathFor(pagePath string) string {
	return strings.Repeat("../", strings.Count(pagePath, "/"))
}

// titleFromPath derives a page title from a file name.
func titleFromPath(relPath string) string {
	base := path.Base(relPath)
	return formatDirName(strings.TrimSuffix(base, path.Ext(base)))
}

// formatDirName converts a slug to a human-readable display name.
func formatDirName(name string) string {
	words := strings.FieldsFunc(name, func(c rune) bool {
		return c == '-' || c == '_'
	})
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
