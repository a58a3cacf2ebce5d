package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/pictorlabs/pictor/errors"
	"github.com/pictorlabs/pictor/pkg/models"
	"github.com/pictorlabs/pictor/pkg/nav"
)

// RemoteClient implements Client by calling the collections server's HTTP API.
type RemoteClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewRemoteClient creates a RemoteClient talking to the server at baseURL.
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// FetchListing returns the listing payload for a target. The response body is
// decoded as-is; normalization of the collections/items variants happens in
// the listing store.
func (c *RemoteClient) FetchListing(ctx context.Context, target nav.Target) (*models.ListingPayload, error) {
	endpoint := nav.Resolve(target).Endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, errors.NetworkFailure(endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NetworkFailure(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.ServerError(endpoint, resp.StatusCode)
	}

	var payload models.ListingPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.MalformedResponse(err.Error())
	}
	return &payload, nil
}

// Move relocates an item into a target folder.
func (c *RemoteClient) Move(ctx context.Context, req models.MoveRequest) error {
	var status models.StatusResponse
	if err := c.postJSON(ctx, nav.MoveEndpoint, req, &status); err != nil {
		return err
	}
	if !status.Success {
		reason := status.Error
		if reason == "" {
			reason = "move rejected by server"
		}
		return errors.MoveRejected(reason)
	}
	return nil
}

// CreateFolder creates a new folder under parentPath.
func (c *RemoteClient) CreateFolder(ctx context.Context, parentPath, name string) error {
	body := map[string]string{"path": parentPath, "name": name}
	var status models.StatusResponse
	if err := c.postJSON(ctx, nav.FolderEndpoint, body, &status); err != nil {
		return err
	}
	return statusError(status, nav.FolderEndpoint)
}

// Rename changes an item's leaf name and returns its new path.
func (c *RemoteClient) Rename(ctx context.Context, path, newName string) (string, error) {
	body := map[string]string{"path": path, "new_name": newName}
	var resp struct {
		models.StatusResponse
		NewPath string `json:"new_path"`
	}
	if err := c.postJSON(ctx, nav.RenameEndpoint, body, &resp); err != nil {
		return "", err
	}
	if err := statusError(resp.StatusResponse, nav.RenameEndpoint); err != nil {
		return "", err
	}
	return resp.NewPath, nil
}

// Delete permanently removes an item.
func (c *RemoteClient) Delete(ctx context.Context, path string) error {
	body := map[string]string{"path": path}
	var status models.StatusResponse
	if err := c.postJSON(ctx, nav.DeleteEndpoint, body, &status); err != nil {
		return err
	}
	return statusError(status, nav.DeleteEndpoint)
}

// ToggleFavorite flips an item's favorite flag and returns the new state.
func (c *RemoteClient) ToggleFavorite(ctx context.Context, path string) (bool, error) {
	body := map[string]string{"path": path}
	var resp models.FavoriteResponse
	if err := c.postJSON(ctx, nav.FavoriteEndpoint, body, &resp); err != nil {
		return false, err
	}
	if !resp.Success {
		reason := resp.Error
		if reason == "" {
			reason = "favorite toggle rejected by server"
		}
		return false, errors.New(errors.ErrCodeServerError, reason)
	}
	return resp.IsFavorite, nil
}

// Trash moves an item into the trash folder.
func (c *RemoteClient) Trash(ctx context.Context, path string) error {
	body := map[string]string{"path": path}
	var status models.StatusResponse
	if err := c.postJSON(ctx, nav.TrashEndpoint, body, &status); err != nil {
		return err
	}
	return statusError(status, nav.TrashEndpoint)
}

// Upload stores a file under folderPath via the multipart upload endpoint.
func (c *RemoteClient) Upload(ctx context.Context, folderPath, name string, content io.Reader) (models.CollectionItem, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("path", folderPath); err != nil {
		return models.CollectionItem{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode upload form")
	}
	part, err := form.CreateFormFile("files[]", name)
	if err != nil {
		return models.CollectionItem{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode upload form")
	}
	if _, err := io.Copy(part, content); err != nil {
		return models.CollectionItem{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to read upload content")
	}
	if err := form.Close(); err != nil {
		return models.CollectionItem{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to encode upload form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+nav.UploadEndpoint, &buf)
	if err != nil {
		return models.CollectionItem{}, errors.NetworkFailure(nav.UploadEndpoint, err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.CollectionItem{}, errors.NetworkFailure(nav.UploadEndpoint, err)
	}
	defer resp.Body.Close()

	var result models.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.CollectionItem{}, errors.MalformedResponse(err.Error())
	}
	if !result.Success || len(result.Uploaded) == 0 {
		reason := "upload rejected by server"
		if len(result.Failed) > 0 && result.Failed[0].Error != "" {
			reason = result.Failed[0].Error
		}
		return models.CollectionItem{}, errors.New(errors.ErrCodeServerError, reason).
			WithDetail("endpoint", nav.UploadEndpoint)
	}
	return result.Uploaded[0], nil
}

// OpenFile streams an item's content from the server.
func (c *RemoteClient) OpenFile(ctx context.Context, path, ownerID string) (io.ReadCloser, error) {
	endpoint := nav.FileURL(path, ownerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, errors.NetworkFailure(endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NetworkFailure(endpoint, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, errors.ItemNotFound(path)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.ServerError(endpoint, resp.StatusCode)
	}
	return resp.Body, nil
}

// IsAvailable returns true if the server is reachable and responding.
func (c *RemoteClient) IsAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Close cleans up idle connections.
func (c *RemoteClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *RemoteClient) postJSON(ctx context.Context, endpoint string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return errors.NetworkFailure(endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NetworkFailure(endpoint, err)
	}
	defer resp.Body.Close()

	// Rejections come back with a JSON body describing the reason, so decode
	// 4xx responses instead of failing on status alone.
	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.ServerError(endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.MalformedResponse(err.Error())
	}
	return nil
}

func statusError(status models.StatusResponse, endpoint string) error {
	if status.Success {
		return nil
	}
	reason := status.Error
	if reason == "" {
		reason = "request rejected by server"
	}
	return errors.New(errors.ErrCodeServerError, reason).WithDetail("endpoint", endpoint)
}

// Ensure RemoteClient implements Client.
var _ Client = (*RemoteClient)(nil)
