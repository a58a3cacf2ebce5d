package nav

import (
	"net/url"
	"strings"
)

// Endpoint paths of the collections API. The resolver owns URL construction
// so no other component concatenates endpoint strings.
const (
	listingEndpoint  = "/api/collections"
	categoryEndpoint = "/api/collections/list/"
	fileEndpoint     = "/api/collections/file/"

	MoveEndpoint     = "/api/collections/move"
	UploadEndpoint   = "/api/collections/upload"
	FolderEndpoint   = "/api/collections/folder"
	RenameEndpoint   = "/api/collections/rename"
	DeleteEndpoint   = "/api/collections/delete"
	FavoriteEndpoint = "/api/collections/favorite"
	TrashEndpoint    = "/api/collections/trash"
)

// Resolution is the outcome of resolving a navigation target.
type Resolution struct {
	// Endpoint is the server-relative listing URL for the target.
	Endpoint string

	// IsVirtual is true for category targets.
	IsVirtual bool
}

// Resolve maps a navigation target to its listing endpoint. Category targets
// address the category-specific resource under the backend's name for the
// category; path targets address the general listing resource parameterized
// by path.
func Resolve(t Target) Resolution {
	if t.IsCategory() {
		return Resolution{
			Endpoint:  categoryEndpoint + t.Category().BackendName(),
			IsVirtual: true,
		}
	}
	return Resolution{
		Endpoint: listingEndpoint + "?path=" + url.QueryEscape(t.Path()),
	}
}

// FileURL constructs the server-relative download/preview URL for an item.
// ownerID is carried as a query parameter for items visible through sharing.
func FileURL(path, ownerID string) string {
	escaped := url.PathEscape(Canonicalize(path))
	// Keep separators readable; only individual segments need escaping.
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	u := fileEndpoint + escaped
	if ownerID != "" {
		u += "?owner_id=" + url.QueryEscape(ownerID)
	}
	return u
}

// Crumb is one entry of a breadcrumb trail.
type Crumb struct {
	Label  string
	Target Target
}

// BreadcrumbFor derives the breadcrumb trail for a target. It is pure and
// total: every trail starts with the Home entry. Path targets expand each
// prefix of their segments; category targets get exactly one synthetic entry.
func BreadcrumbFor(t Target) []Crumb {
	crumbs := []Crumb{{Label: "Home", Target: Root()}}

	if t.IsCategory() {
		return append(crumbs, Crumb{Label: t.Category().Label(), Target: t})
	}

	segments := t.Segments()
	for i, seg := range segments {
		crumbs = append(crumbs, Crumb{
			Label:  seg,
			Target: PathTarget(strings.Join(segments[:i+1], "/")),
		})
	}
	return crumbs
}
