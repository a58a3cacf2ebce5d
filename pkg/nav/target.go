// Package nav maps navigation targets (logical paths and virtual categories)
// to backend endpoints and breadcrumb trails.
package nav

import (
	"strings"
)

// Category names a virtual, non-hierarchical pseudo-folder.
type Category string

const (
	CategoryRecent    Category = "recent"
	CategoryFavorites Category = "favorites"
	CategoryShared    Category = "shared"
	CategoryTrash     Category = "trash"
)

// backendCategoryShared is the storage-facing identifier for the category the
// UI surfaces as "shared". The resolver is the single point translating
// between the two names.
const backendCategoryShared = "permitted"

// Categories lists all virtual categories in display order.
var Categories = []Category{CategoryRecent, CategoryFavorites, CategoryShared, CategoryTrash}

// BackendName returns the category identifier the storage API expects.
func (c Category) BackendName() string {
	if c == CategoryShared {
		return backendCategoryShared
	}
	return string(c)
}

// Label returns the user-facing capitalized category label.
func (c Category) Label() string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Target is a navigation destination: either a logical path within the
// collection hierarchy or a virtual category. The zero value is the root
// path target. Targets are comparable; two targets are the same destination
// exactly when they compare equal.
type Target struct {
	category Category
	path     string
}

// Root returns the root path target.
func Root() Target {
	return Target{}
}

// PathTarget returns a target for a logical path. The path is canonicalized:
// no empty segments, no leading or trailing separators. The empty string
// denotes the root.
func PathTarget(path string) Target {
	return Target{path: Canonicalize(path)}
}

// CategoryTarget returns a target for a virtual category.
func CategoryTarget(c Category) Target {
	return Target{category: c}
}

// ParseTarget interprets user input as a target. Category names (including
// the backend alias for shared) take precedence over same-named paths.
func ParseTarget(s string) Target {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(CategoryRecent):
		return CategoryTarget(CategoryRecent)
	case string(CategoryFavorites):
		return CategoryTarget(CategoryFavorites)
	case string(CategoryShared), backendCategoryShared:
		return CategoryTarget(CategoryShared)
	case string(CategoryTrash):
		return CategoryTarget(CategoryTrash)
	}
	return PathTarget(s)
}

// IsCategory reports whether the target is a virtual category.
func (t Target) IsCategory() bool {
	return t.category != ""
}

// Category returns the category of a category target, or "" for path targets.
func (t Target) Category() Category {
	return t.category
}

// Path returns the canonical path of a path target, or "" for categories.
func (t Target) Path() string {
	return t.path
}

// IsRoot reports whether the target is the root path.
func (t Target) IsRoot() bool {
	return t.category == "" && t.path == ""
}

// Segments returns the path segments of a path target; nil for the root or
// for categories.
func (t Target) Segments() []string {
	if t.category != "" || t.path == "" {
		return nil
	}
	return strings.Split(t.path, "/")
}

// Parent returns the target one level up. Categories and the root resolve to
// the root.
func (t Target) Parent() Target {
	segments := t.Segments()
	if len(segments) <= 1 {
		return Root()
	}
	return Target{path: strings.Join(segments[:len(segments)-1], "/")}
}

// String renders the target for display and logging.
func (t Target) String() string {
	if t.category != "" {
		return string(t.category)
	}
	if t.path == "" {
		return "/"
	}
	return t.path
}

// Canonicalize normalizes a slash-delimited logical path: separators are
// collapsed, empty segments and "." are dropped, and leading/trailing
// slashes are removed. "" denotes the root.
func Canonicalize(path string) string {
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, p := range parts {
		if p == "" || p == "." {
			continue
		}
		segments = append(segments, p)
	}
	return strings.Join(segments, "/")
}

// IsSafe reports whether a canonical path stays within the collection tree.
// Traversal segments and absolute-looking paths are rejected.
func IsSafe(path string) bool {
	if strings.HasPrefix(path, "/") || strings.Contains(path, "\\") {
		return false
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}

// ParentPath returns all segments of a canonical path except the last;
// "" for a top-level path.
func ParentPath(path string) string {
	path = Canonicalize(path)
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// LeafName returns the final segment of a canonical path.
func LeafName(path string) string {
	path = Canonicalize(path)
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

// IsSelfOrDescendant reports whether candidate equals ancestor or is nested
// under it. The comparison is segment-wise: "photos-backup" is not a
// descendant of "photos".
func IsSelfOrDescendant(candidate, ancestor string) bool {
	candidate = Canonicalize(candidate)
	ancestor = Canonicalize(ancestor)
	if candidate == ancestor {
		return true
	}
	return strings.HasPrefix(candidate, ancestor+"/")
}

// JoinPath appends a leaf name to a canonical parent path.
func JoinPath(parent, name string) string {
	parent = Canonicalize(parent)
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
