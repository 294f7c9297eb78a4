package app

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/haul/internal/core/domain"
	"go.trai.ch/haul/internal/ui/style"
)

// treeStyler renders the individual parts of the status tree.
type treeStyler struct {
	name         func(string) string
	version      func(string) string
	experimental func(string) string
	muted        func(string) string
}

func colorStyler() treeStyler {
	return treeStyler{
		name:         func(s string) string { return style.Name.Render(s) },
		version:      func(s string) string { return style.Version.Render(s) },
		experimental: func(s string) string { return style.Experimental.Render(s) },
		muted:        func(s string) string { return style.Muted.Render(s) },
	}
}

func plainStyler() treeStyler {
	id := func(s string) string { return s }
	return treeStyler{name: id, version: id, experimental: id, muted: id}
}

// renderTree formats the installed dependency tree for the status command.
func renderTree(root *domain.Lockfile, plain bool) string {
	st := colorStyler()
	if plain {
		st = plainStyler()
	}

	var b strings.Builder
	b.WriteString(st.name(root.Name))
	b.WriteString("\n")
	renderChildren(&b, st, root, "")
	return b.String()
}

func renderChildren(b *strings.Builder, st treeStyler, lf *domain.Lockfile, prefix string) {
	names := make([]string, 0, len(lf.Dependencies))
	for name := range lf.Dependencies {
		names = append(names, name)
	}
	slices.Sort(names)

	for i, name := range names {
		child := lf.Dependencies[name]

		branch, childPrefix := "├── ", prefix+"│   "
		if i == len(names)-1 {
			branch, childPrefix = "└── ", prefix+"    "
		}

		b.WriteString(st.muted(prefix + branch))
		b.WriteString(st.name(child.Name))
		b.WriteString(" ")
		if child.IsPublished() {
			b.WriteString(st.version(child.Version + " " + style.Check))
		} else {
			b.WriteString(st.experimental(child.Version + " " + style.Tilde))
		}
		b.WriteString("\n")

		renderChildren(b, st, child, childPrefix)
	}
}

// copyTree recursively copies a stashed build out of the cache.
func copyTree(src, dest string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case info.Mode()&os.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.IsDir():
			return os.MkdirAll(target, domain.DirPerm)
		default:
			return copyFile(path, target)
		}
	})
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
