package models

import (
	"encoding/json"
	"path"
	"strings"
	"time"

	"github.com/pictorlabs/pictor/errors"
)

// Kind distinguishes folder and file items.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// imageExtensions is the set of recognized image file extensions.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
	".svg":  {},
}

// IsImageName reports whether a file name has a recognized image extension.
// The comparison is case-insensitive.
func IsImageName(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	_, ok := imageExtensions[ext]
	return ok
}

// CollectionItem represents one folder or file node in a listing.
// Items are constructed fresh on every fetch and identified across fetches
// by Path equality, never by object identity.
type CollectionItem struct {
	// Path is the canonical root-relative identifier of the item.
	Path string `json:"path"`

	// Name is the leaf display name, the final path segment.
	Name string `json:"name"`

	// Kind is "folder" or "file".
	Kind Kind `json:"type"`

	// IsImage is true only for files with a recognized image extension.
	IsImage bool `json:"isImage,omitempty"`

	// OwnerID is set when the item is visible through a sharing
	// relationship rather than direct ownership.
	OwnerID string `json:"owner_id,omitempty"`

	// SharedBy is the display name of the sharing owner, when known.
	SharedBy string `json:"shared_by,omitempty"`

	// IsFavorite is mutable independent of the item's location.
	IsFavorite bool `json:"is_favorite,omitempty"`

	// Size is the file size in bytes; zero for folders.
	Size int64 `json:"size,omitempty"`

	// ModifiedTime is the last modification timestamp, when the backend
	// provides one.
	ModifiedTime time.Time `json:"modifiedTime,omitempty"`
}

// IsFolder reports whether the item is a folder.
func (i CollectionItem) IsFolder() bool {
	return i.Kind == KindFolder
}

// UnmarshalJSON decodes an item while tolerating unknown fields and failing
// closed when a required field is absent.
func (i *CollectionItem) UnmarshalJSON(data []byte) error {
	type wireItem CollectionItem
	var w struct {
		wireItem
		// Some backend responses carry type information redundantly;
		// isDir is accepted as a fallback when type is present but empty.
		IsDir *bool `json:"isDir"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(err, errors.ErrCodeMalformedResponse, "failed to decode listing item")
	}

	if w.Kind == "" && w.IsDir != nil {
		if *w.IsDir {
			w.Kind = KindFolder
		} else {
			w.Kind = KindFile
		}
	}

	if w.Path == "" {
		return errors.MalformedResponse("listing item missing path")
	}
	if w.Name == "" {
		return errors.MalformedResponse("listing item missing name")
	}
	if w.Kind != KindFolder && w.Kind != KindFile {
		return errors.MalformedResponse("listing item missing or unknown type")
	}

	*i = CollectionItem(w.wireItem)

	// The image flag is derived, not trusted: a folder is never an image and
	// a file is an image exactly when its extension says so.
	i.IsImage = i.Kind == KindFile && IsImageName(i.Name)

	return nil
}
