package client

import (
	"context"
	"net/http"
	"net/url"

	"tryout_backend/internal/model"
	"tryout_backend/internal/util"
)

func (c *Client) ListQuestions(ctx context.Context, tryoutID string) ([]model.Question, error) {
	var out []model.Question
	if err := c.do(ctx, util.ResourceQuestion, "list", http.MethodGet, "/tryouts/"+url.PathEscape(tryoutID)+"/questions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetQuestion(ctx context.Context, id string) (*model.Question, error) {
	var out model.Question
	if err := c.do(ctx, util.ResourceQuestion, "get", http.MethodGet, "/questions/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateQuestion(ctx context.Context, tryoutID string, in model.QuestionCreateInput) (*model.Question, error) {
	var out model.Question
	if err := c.do(ctx, util.ResourceQuestion, "create", http.MethodPost, "/tryouts/"+url.PathEscape(tryoutID)+"/questions", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateQuestion(ctx context.Context, id string, in model.QuestionUpdateInput) (*model.Question, error) {
	var out model.Question
	if err := c.do(ctx, util.ResourceQuestion, "update", http.MethodPatch, "/questions/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, id string) error {
	return c.do(ctx, util.ResourceQuestion, "delete", http.MethodDelete, "/questions/"+url.PathEscape(id), nil, nil, nil)
}
