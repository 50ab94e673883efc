package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// UploadResult identifies a stored image: the serving URL plus the storage id
// used for later deletion.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// Upload forwards one image file to backend storage as a multipart request.
func (c *Client) Upload(ctx context.Context, creds Credentials, filename string, content io.Reader) (UploadResult, error) {
	var result UploadResult

	req := c.http.R().
		SetContext(ctx).
		SetFileReader("image", filename, content).
		SetResult(&result)
	if token := creds.forScope(ScopeAdmin); token != "" {
		req.SetAuthToken(token)
	}
	var wire wireError
	req.SetError(&wire)

	resp, err := req.Post("/upload")
	if err != nil {
		return UploadResult{}, fmt.Errorf("backend POST /upload: %w", err)
	}
	if resp.IsError() {
		msg := wire.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return UploadResult{}, &APIError{Status: resp.StatusCode(), Message: msg}
	}
	return result, nil
}

// DeleteUpload removes a stored image by its storage id.
func (c *Client) DeleteUpload(ctx context.Context, creds Credentials, publicID string) error {
	return c.do(ctx, ScopeAdmin, creds, http.MethodDelete, "/upload",
		map[string]string{"publicId": publicID}, nil)
}
