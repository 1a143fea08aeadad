package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// ErrMissingBaseURL is returned by operations that cannot degrade when
// the upstream base URL env var is unset.
var ErrMissingBaseURL = errors.New("upstream base URL is not configured")

// UpstreamClient talks to the remote Peenly backend. Calls are one-shot:
// no retry, no backoff; a failed call affects only the request that made
// it, never local store state.
type UpstreamClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewUpstreamClient(baseURL string) *UpstreamClient {
	return &UpstreamClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// RegisterGuardian forwards the caller's JSON body verbatim to the
// upstream registration endpoint and returns the upstream status and raw
// body unchanged.
func (c *UpstreamClient) RegisterGuardian(ctx context.Context, body []byte) (int, []byte, error) {
	if c.BaseURL == "" {
		return 0, nil, ErrMissingBaseURL
	}

	url := c.BaseURL + "/api/v1/auth/register-guardian"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, respBody, nil
}

// GuardianDisplayName resolves a guardian's display name for page
// metadata. Any failure degrades to "Parent {id}"; it never errors.
func (c *UpstreamClient) GuardianDisplayName(ctx context.Context, id string) string {
	return c.displayName(ctx, "/api/v1/guardian/get-by-id/", id, "Parent")
}

// TutorDisplayName resolves a tutor's display name for page metadata.
// Any failure degrades to "Tutor {id}"; it never errors.
func (c *UpstreamClient) TutorDisplayName(ctx context.Context, id string) string {
	return c.displayName(ctx, "/api/v1/tutor/get-by-id/", id, "Tutor")
}

func (c *UpstreamClient) displayName(ctx context.Context, path, id, fallback string) string {
	placeholder := fallback + " " + id
	if c.BaseURL == "" {
		return placeholder
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+id, nil)
	if err != nil {
		return placeholder
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return placeholder
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return placeholder
	}

	var out struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || out.Name == "" {
		return placeholder
	}
	return out.Name
}

// UploadFile posts the file and phone number as multipart form data to
// the upstream upload endpoint, with an optional bearer token, and
// returns the parsed response body. Errors when the base URL is unset.
func (c *UpstreamClient) UploadFile(ctx context.Context, token, phoneNumber, filename string, file io.Reader) (map[string]interface{}, error) {
	if c.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.WriteField("phoneNumber", phoneNumber); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/v1/upload/uploadFile", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upload failed: upstream returned %d", resp.StatusCode)
	}

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
