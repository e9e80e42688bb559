package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"dms-go/internal/model"
)

func (c *Client) ListDocuments(ctx context.Context, token string, filter model.DocumentFilter) (*model.DocumentPage, error) {
	path := "/api/documents"
	if q := filterQuery(filter); q != "" {
		path += "?" + q
	}

	var page model.DocumentPage
	err := c.doJSON(ctx, request{
		op:       "ListDocuments",
		fallback: "Failed to load documents",
		method:   http.MethodGet,
		path:     path,
		token:    token,
	}, nil, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// filterQuery encodes the non-zero filter fields.
func filterQuery(f model.DocumentFilter) string {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(f.CategoryID, 10))
	}
	return q.Encode()
}

func (c *Client) GetDocument(ctx context.Context, token string, id int64) (*model.Document, error) {
	var res struct {
		Document model.Document `json:"document"`
	}
	err := c.doJSON(ctx, request{
		op:       "GetDocument",
		fallback: "Failed to load document",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/documents/%d", id),
		token:    token,
	}, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res.Document, nil
}

// UploadDocument sends file and its metadata as multipart form data.
// category_id and tags are omitted when empty.
func (c *Client) UploadDocument(ctx context.Context, token string, file io.Reader, req model.UploadRequest) (*model.Document, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, fmt.Errorf("create upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read %s: %w", req.Filename, err)
	}

	fields := [][2]string{
		{"title", req.Title},
		{"description", req.Description},
	}
	if req.CategoryID > 0 {
		fields = append(fields, [2]string{"category_id", strconv.FormatInt(req.CategoryID, 10)})
	}
	if req.Tags != "" {
		fields = append(fields, [2]string{"tags", req.Tags})
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("write upload field %s: %w", f[0], err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish upload form: %w", err)
	}

	var res struct {
		Document model.Document `json:"document"`
	}
	err = c.doJSON(ctx, request{
		op:          "UploadDocument",
		fallback:    "Upload failed",
		method:      http.MethodPost,
		path:        "/api/documents/upload",
		token:       token,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, nil, &res)
	if err != nil {
		return nil, err
	}
	return &res.Document, nil
}

// DownloadDocument returns the raw document body. The caller must close it.
func (c *Client) DownloadDocument(ctx context.Context, token string, id int64) (io.ReadCloser, error) {
	resp, err := c.do(ctx, request{
		op:       "DownloadDocument",
		fallback: "Failed to download file",
		method:   http.MethodGet,
		path:     fmt.Sprintf("/api/documents/%d/download", id),
		token:    token,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func (c *Client) DeleteDocument(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, request{
		op:       "DeleteDocument",
		fallback: "Failed to delete document",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/api/documents/%d", id),
		token:    token,
	}, nil, nil)
}

func (c *Client) FetchStats(ctx context.Context, token string) (*model.Stats, error) {
	var stats model.Stats
	err := c.doJSON(ctx, request{
		op:       "FetchStats",
		fallback: "Failed to load statistics",
		method:   http.MethodGet,
		path:     "/api/documents/stats",
		token:    token,
	}, nil, &stats)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
