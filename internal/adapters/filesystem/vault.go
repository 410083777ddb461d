package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"smartctx/internal/domain"
)

// textExtensions lists the file types folder expansion picks up.
var textExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".canvas":   true,
}

// Vault provides note content, link resolution, and item enumeration over
// a directory of markdown notes. It implements ports.ContentProvider,
// ports.LinkResolver, and ports.ItemSource.
type Vault struct {
	root string

	// basename -> relative path, built lazily for link resolution
	names map[string]string
}

// NewVault creates a vault rooted at the given path, expanding a leading ~.
func NewVault(path string) *Vault {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return &Vault{root: path}
}

// Root returns the vault's absolute root path.
func (v *Vault) Root() string {
	return v.root
}

// Read returns a note's content by key. A heading fragment
// ("note.md#Heading") narrows the content to that section; a block
// fragment ("note.md#^id") narrows it to the block line. Missing notes
// read as empty, not as an error.
func (v *Vault) Read(ctx context.Context, key string) (string, error) {
	base := domain.BaseKey(key)
	data, err := os.ReadFile(filepath.Join(v.root, filepath.FromSlash(base)))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	text := string(data)

	fragment := strings.TrimPrefix(key, base)
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" {
		return text, nil
	}

	if strings.HasPrefix(fragment, "^") {
		return blockSection(text, fragment), nil
	}
	section, ok := domain.ExtractSection(text, fragment)
	if !ok {
		return "", nil
	}
	return section, nil
}

// blockSection returns the line carrying a ^block identifier, marker
// stripped.
func blockSection(text, blockID string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasSuffix(strings.TrimSpace(line), blockID) {
			return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), blockID))
		}
	}
	return ""
}

// Resolve maps wiki-link text to a vault key. Exact relative paths win,
// with and without the .md extension; bare names fall back to a basename
// lookup across the vault. Fragments are preserved on the resolved key.
func (v *Vault) Resolve(linkText, fromKey string) (string, bool) {
	linkText = strings.TrimSpace(linkText)
	if linkText == "" {
		return "", false
	}

	target := linkText
	fragment := ""
	if i := strings.Index(target, "#"); i >= 0 {
		fragment = target[i:]
		target = target[:i]
	}
	if target == "" {
		// "#Heading" refers into the linking note itself.
		return domain.BaseKey(fromKey) + fragment, true
	}

	for _, candidate := range []string{target, target + ".md"} {
		if v.exists(candidate) {
			return filepath.ToSlash(candidate) + fragment, true
		}
	}

	if !strings.Contains(target, "/") {
		if rel, ok := v.lookupName(target); ok {
			return rel + fragment, true
		}
	}
	return "", false
}

func (v *Vault) exists(rel string) bool {
	info, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(rel)))
	return err == nil && !info.IsDir()
}

// lookupName finds a note by basename, extension optional.
func (v *Vault) lookupName(name string) (string, bool) {
	if v.names == nil {
		v.names = make(map[string]string)
		filepath.Walk(v.root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil
			}
			if info.IsDir() {
				if strings.HasPrefix(info.Name(), ".") && path != v.root {
					return filepath.SkipDir
				}
				return nil
			}
			rel, _ := filepath.Rel(v.root, path)
			rel = filepath.ToSlash(rel)
			base := info.Name()
			v.names[base] = rel
			if ext := filepath.Ext(base); textExtensions[ext] {
				v.names[strings.TrimSuffix(base, ext)] = rel
			}
			return nil
		})
	}
	rel, ok := v.names[name]
	return rel, ok
}

// Expand resolves a file or folder reference to concrete note keys. Folder
// references ("notes/" or a directory path) expand recursively to every
// text file under them, skipping dot directories and anything matching an
// ignore pattern.
func (v *Vault) Expand(ref string, ignore []string) ([]string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	full := filepath.Join(v.root, filepath.FromSlash(strings.TrimSuffix(ref, "/")))
	info, err := os.Stat(full)
	if err != nil {
		// Maybe a link-style reference without extension.
		if resolved, ok := v.Resolve(ref, ""); ok {
			return []string{resolved}, nil
		}
		return nil, err
	}

	if !info.IsDir() {
		return []string{filepath.ToSlash(strings.TrimSuffix(ref, "/"))}, nil
	}

	var keys []string
	err = filepath.Walk(full, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		rel, _ := filepath.Rel(v.root, path)
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") && path != full {
				return filepath.SkipDir
			}
			if matchesIgnore(rel+"/", info.Name(), ignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if !textExtensions[filepath.Ext(info.Name())] {
			return nil
		}
		if matchesIgnore(rel, info.Name(), ignore) {
			return nil
		}
		keys = append(keys, rel)
		return nil
	})
	return keys, err
}

// matchesIgnore checks a relative path and its basename against glob
// patterns.
func matchesIgnore(rel, name string, ignore []string) bool {
	for _, pattern := range ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Stat returns a note's modification time and size.
func (v *Vault) Stat(key string) (int64, int64, error) {
	info, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(domain.BaseKey(key))))
	if err != nil {
		return 0, 0, err
	}
	return info.ModTime().Unix(), info.Size(), nil
}
