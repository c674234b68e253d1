// Package api wraps the document question-answering backend. The backend
// reports logical failures as an "error" field inside a 200 body, so every
// call decodes that field before trusting the payload.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"docchat/src/models"
)

// Client talks to the backend at a fixed base address. Requests carry no
// timeout and are never retried, matching the reference client; callers
// control lifetime through the context.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// UploadResult is the payload of a successful upload.
type UploadResult struct {
	DocID string `json:"doc_id"`
}

// AskResult is the payload of a successful question.
type AskResult struct {
	Answer  string          `json:"answer"`
	Sources []models.Source `json:"sources"`
}

// apiError mirrors the backend's in-body error reporting.
type apiError struct {
	Error string `json:"error"`
}

// BackendError is a logical failure the backend reported in a response
// body, as opposed to a transport failure. Its message is meant to be shown
// to the user verbatim.
type BackendError struct {
	Message string
}

func (e *BackendError) Error() string {
	return "backend error: " + e.Message
}

// Upload posts the file content as multipart form field "file" and returns
// the document ID the backend assigned.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (UploadResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return UploadResult{}, fmt.Errorf("read upload content: %w", err)
	}
	if err := w.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("finish upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		return UploadResult{}, err
	}
	if result.DocID == "" {
		return UploadResult{}, fmt.Errorf("upload response missing doc_id")
	}
	return result, nil
}

// Index asks the backend to build the retrieval index for an uploaded
// document. The body beyond the error field is implementation-defined and
// discarded.
func (c *Client) Index(ctx context.Context, docID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/index/"+docID, nil)
	if err != nil {
		return err
	}
	return c.do(req, &struct{}{})
}

// Ask posts a question against a bound document. topK is the retrieval
// width: how many document chunks the backend should consider.
func (c *Client) Ask(ctx context.Context, docID, question string, topK int) (AskResult, error) {
	payload, err := json.Marshal(map[string]any{
		"doc_id":   docID,
		"question": question,
		"top_k":    topK,
	})
	if err != nil {
		return AskResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ask", bytes.NewReader(payload))
	if err != nil {
		return AskResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var result AskResult
	if err := c.do(req, &result); err != nil {
		return AskResult{}, err
	}
	return result, nil
}

// Health probes the backend. A nil error means it is reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	return c.do(req, &struct{}{})
}

// do executes the request, checks transport status and the in-body error
// field, and decodes the body into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e apiError
		if err := json.Unmarshal(data, &e); err == nil && e.Error != "" {
			return &BackendError{Message: e.Error}
		}
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(data))
	}

	var e apiError
	if err := json.Unmarshal(data, &e); err == nil && e.Error != "" {
		return &BackendError{Message: e.Error}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
