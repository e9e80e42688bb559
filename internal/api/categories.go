package api

import (
	"context"
	"fmt"
	"net/http"

	"dms-go/internal/model"
)

func (c *Client) ListCategories(ctx context.Context, token string) ([]model.Category, error) {
	var res struct {
		Categories []model.Category `json:"categories"`
	}
	err := c.doJSON(ctx, request{
		op:       "ListCategories",
		fallback: "Failed to load categories",
		method:   http.MethodGet,
		path:     "/api/categories",
		token:    token,
	}, nil, &res)
	if err != nil {
		return nil, err
	}
	return res.Categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, token string, fields model.CategoryFields) (*model.Category, error) {
	var res struct {
		Category model.Category `json:"category"`
	}
	err := c.doJSON(ctx, request{
		op:       "CreateCategory",
		fallback: "Failed to create category",
		method:   http.MethodPost,
		path:     "/api/categories",
		token:    token,
	}, fields, &res)
	if err != nil {
		return nil, err
	}
	return &res.Category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int64, fields model.CategoryFields) (*model.Category, error) {
	var res struct {
		Category model.Category `json:"category"`
	}
	err := c.doJSON(ctx, request{
		op:       "UpdateCategory",
		fallback: "Failed to update category",
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/categories/%d", id),
		token:    token,
	}, fields, &res)
	if err != nil {
		return nil, err
	}
	return &res.Category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, request{
		op:       "DeleteCategory",
		fallback: "Failed to delete category",
		method:   http.MethodDelete,
		path:     fmt.Sprintf("/api/categories/%d", id),
		token:    token,
	}, nil, nil)
}
