package models

import (
	"encoding/json"

	"github.com/pictorlabs/pictor/errors"
)

// ListingPayload is the raw wire shape of a listing response. General path
// listings populate Collections; virtual category listings populate Items.
// Normalization into a single item sequence is the listing store's job, not
// the decoder's: only the store knows which listing a payload supersedes.
type ListingPayload struct {
	Collections []CollectionItem
	Items       []CollectionItem
	Path        string
	Parent      *string

	// HasCollections/HasItems record field presence so an empty listing is
	// distinguishable from a malformed one.
	HasCollections bool
	HasItems       bool
}

// UnmarshalJSON decodes a listing payload, tolerating unknown fields and
// tracking which of the two item fields the backend actually sent.
func (p *ListingPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeMalformedResponse, "failed to decode listing response")
	}

	*p = ListingPayload{}

	if msg, ok := raw["collections"]; ok {
		p.HasCollections = true
		if err := json.Unmarshal(msg, &p.Collections); err != nil {
			return err
		}
	}
	if msg, ok := raw["items"]; ok {
		p.HasItems = true
		if err := json.Unmarshal(msg, &p.Items); err != nil {
			return err
		}
	}
	if msg, ok := raw["path"]; ok {
		if err := json.Unmarshal(msg, &p.Path); err != nil {
			return errors.Wrap(err, errors.ErrCodeMalformedResponse, "failed to decode listing path")
		}
	}
	if msg, ok := raw["parent"]; ok {
		if err := json.Unmarshal(msg, &p.Parent); err != nil {
			return errors.Wrap(err, errors.ErrCodeMalformedResponse, "failed to decode listing parent")
		}
	}

	return nil
}

// MoveRequest asks the backend to relocate an item.
type MoveRequest struct {
	SourcePath string `json:"source_path"`
	TargetPath string `json:"target_path"`
}

// MoveResult reports the outcome of a move. A move never mutates a listing
// directly; success is observed through a subsequent fetch.
type MoveResult struct {
	Moved  bool
	Reason string
}

// UploadFailure reports one file the upload endpoint could not store.
type UploadFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadResponse is the wire shape of the upload endpoint. Success is true
// when at least one file was stored; partial failures are listed alongside.
type UploadResponse struct {
	Success  bool             `json:"success"`
	Uploaded []CollectionItem `json:"uploaded"`
	Failed   []UploadFailure  `json:"failed,omitempty"`
}

// StatusResponse is the generic success/error wire shape used by mutating
// endpoints.
type StatusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// FavoriteResponse reports the new favorite state after a toggle.
type FavoriteResponse struct {
	Success    bool   `json:"success"`
	IsFavorite bool   `json:"is_favorite"`
	Error      string `json:"error,omitempty"`
}
