// Package confluence implements the REST client for the Confluence content
// API, the remote document store behind the publisher.
package confluence

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors classifying remote failures. Transport-level failures are
// surfaced verbatim and carry none of these.
var (
	ErrNotFound        = errors.New("content not found")
	ErrAuthFailed      = errors.New("authentication failed")
	ErrForbidden       = errors.New("operation forbidden")
	ErrVersionConflict = errors.New("version conflict")
	ErrValidation      = errors.New("request rejected as invalid")
	ErrRemoteReject    = errors.New("request rejected by remote")
)

const defaultHTTPTimeout = 30 * time.Second

// Client wraps the Confluence REST API. It encapsulates authentication
// details and the base URL.
type Client struct {
	baseURL string
	email   string
	token   string
	http    *http.Client
}

// NewClient constructs a client for the instance at baseURL using basic
// auth with an email and API token.
func NewClient(baseURL, email, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		token:   token,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Page is the fetched state of one content entity.
type Page struct {
	ID      string
	Title   string
	Version int
	Body    string
}

// Wire types for the content API.
type contentResponse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Version struct {
		Number int `json:"number"`
	} `json:"version"`
	Body struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
}

type versionPayload struct {
	Number int `json:"number"`
}

type storagePayload struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

type bodyPayload struct {
	Storage storagePayload `json:"storage"`
}

type spacePayload struct {
	Key string `json:"key"`
}

type idPayload struct {
	ID string `json:"id"`
}

type updatePayload struct {
	ID      string         `json:"id"`
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Version versionPayload `json:"version"`
	Body    bodyPayload    `json:"body"`
}

type createPayload struct {
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	Space     spacePayload `json:"space"`
	Ancestors []idPayload  `json:"ancestors,omitempty"`
	Body      bodyPayload  `json:"body"`
}

// GetContent fetches a page by id, expanding its storage body and version.
func (c *Client) GetContent(ctx context.Context, id string) (*Page, error) {
	u := fmt.Sprintf("%s/rest/api/content/%s?expand=body.storage,version", c.baseURL, url.PathEscape(id))
	var out contentResponse
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	return &Page{ID: out.ID, Title: out.Title, Version: out.Version.Number, Body: out.Body.Storage.Value}, nil
}

// UpdateContent replaces the body of an existing page. The version must be
// the store's current version plus one; a stale number yields
// ErrVersionConflict.
func (c *Client) UpdateContent(ctx context.Context, id string, version int, title, body string) error {
	payload := updatePayload{
		ID:      id,
		Type:    "page",
		Title:   title,
		Version: versionPayload{Number: version},
		Body:    bodyPayload{Storage: storagePayload{Value: body, Representation: "storage"}},
	}
	u := fmt.Sprintf("%s/rest/api/content/%s", c.baseURL, url.PathEscape(id))
	return c.doJSON(ctx, http.MethodPut, u, payload, nil)
}

// CreateContent creates a new page in the given space, optionally under a
// parent, and returns the new page id.
func (c *Client) CreateContent(ctx context.Context, spaceKey, title, body, parentID string) (string, error) {
	payload := createPayload{
		Type:  "page",
		Title: title,
		Space: spacePayload{Key: spaceKey},
		Body:  bodyPayload{Storage: storagePayload{Value: body, Representation: "storage"}},
	}
	if parentID != "" {
		payload.Ancestors = []idPayload{{ID: parentID}}
	}
	var out contentResponse
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/rest/api/content", payload, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", fmt.Errorf("%w: empty id in create response", ErrRemoteReject)
	}
	return out.ID, nil
}

// UploadAttachment uploads data under name. Any existing attachment with
// the same name is deleted first, so re-uploads are idempotent and the
// deterministic naming convention always points at the latest bytes.
func (c *Client) UploadAttachment(ctx context.Context, id, name string, data []byte, mimeType string) (string, error) {
	if err := c.deleteExistingAttachment(ctx, id, name); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := createFilePart(w, name, mimeType)
	if err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if err := w.WriteField("minorEdit", "true"); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("building upload: %w", err)
	}

	u := fmt.Sprintf("%s/rest/api/content/%s/child/attachment", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Atlassian-Token", "nocheck")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return "", statusError(resp.StatusCode, respBody)
	}
	return name, nil
}

// deleteExistingAttachment removes a previously uploaded attachment with
// the same name, if any. A missing attachment is not an error.
func (c *Client) deleteExistingAttachment(ctx context.Context, id, name string) error {
	u := fmt.Sprintf("%s/rest/api/content/%s/child/attachment?filename=%s",
		c.baseURL, url.PathEscape(id), url.QueryEscape(name))
	var out struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	for _, att := range out.Results {
		du := fmt.Sprintf("%s/rest/api/content/%s", c.baseURL, url.PathEscape(att.ID))
		if err := c.doJSON(ctx, http.MethodDelete, du, nil, nil); err != nil {
			return err
		}
	}
	return nil
}

// doJSON performs one JSON request/response round trip. Transport errors
// return unwrapped; non-2xx responses map to typed errors.
func (c *Client) doJSON(ctx context.Context, method, u string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	cred := base64.StdEncoding.EncodeToString([]byte(c.email + ":" + c.token))
	req.Header.Set("Authorization", "Basic "+cred)
}

func createFilePart(w *multipart.Writer, filename, mimeType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", mimeType)
	return w.CreatePart(h)
}

// statusError maps a non-2xx response to a typed error, extracting the
// message from a structured body when one is present and falling back to
// the raw status otherwise.
func statusError(status int, body []byte) error {
	var kind error
	switch status {
	case http.StatusBadRequest:
		kind = ErrValidation
	case http.StatusUnauthorized:
		kind = ErrAuthFailed
	case http.StatusForbidden:
		kind = ErrForbidden
	case http.StatusNotFound:
		kind = ErrNotFound
	case http.StatusConflict:
		kind = ErrVersionConflict
	default:
		kind = ErrRemoteReject
	}
	msg := remoteMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("%w: status=%d %s", kind, status, msg)
}

func remoteMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return preview(string(body), 300)
}

// preview truncates long bodies for error messages.
func preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[:n] + "…"
	}
	return s
}
