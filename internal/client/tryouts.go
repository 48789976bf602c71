package client

import (
	"context"
	"net/http"
	"net/url"

	"tryout_backend/internal/model"
	"tryout_backend/internal/util"
)

func (c *Client) ListTryouts(ctx context.Context, filter model.TryoutFilter) ([]model.Tryout, error) {
	var out []model.Tryout
	if err := c.do(ctx, util.ResourceTryout, "list", http.MethodGet, "/tryouts", tryoutQuery(filter), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetTryout(ctx context.Context, id string) (*model.Tryout, error) {
	var out model.Tryout
	if err := c.do(ctx, util.ResourceTryout, "get", http.MethodGet, "/tryouts/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTryout(ctx context.Context, in model.TryoutCreateInput) (*model.Tryout, error) {
	var out model.Tryout
	if err := c.do(ctx, util.ResourceTryout, "create", http.MethodPost, "/tryouts", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTryout(ctx context.Context, id string, in model.TryoutUpdateInput) (*model.Tryout, error) {
	var out model.Tryout
	if err := c.do(ctx, util.ResourceTryout, "update", http.MethodPatch, "/tryouts/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTryout(ctx context.Context, id string) error {
	return c.do(ctx, util.ResourceTryout, "delete", http.MethodDelete, "/tryouts/"+url.PathEscape(id), nil, nil, nil)
}

// ScoreTryout asks the backend to grade answers without storing them.
func (c *Client) ScoreTryout(ctx context.Context, id string, answers map[string][]string) (*model.ScoreResult, error) {
	var out model.ScoreResult
	req := model.ScoreRequest{Answers: answers}
	if err := c.do(ctx, util.ResourceTryout, "score", http.MethodPost, "/tryouts/"+url.PathEscape(id)+"/score", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
