package authoring

import (
	"context"
	"strings"

	"tryout_backend/internal/model"
	"tryout_backend/internal/util"
)

// TryoutCreator creates the tryout a new editor's questions belong to.
type TryoutCreator interface {
	CreateTryout(ctx context.Context, in model.TryoutCreateInput) (*model.Tryout, error)
}

// Draft holds tryout settings before the tryout exists.
type Draft struct {
	Title       string
	Description string
	Category    string
	TimeLimit   int
	IsPublic    bool
}

func NewDraft() Draft {
	return Draft{TimeLimit: model.DefaultTimeLimit}
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return util.NewValidationError("title", "please enter a title for the tryout")
	}
	if strings.TrimSpace(d.Category) == "" {
		return util.NewValidationError("category", "please enter a category for the tryout")
	}
	if d.TimeLimit < 0 {
		return util.NewValidationError("timeLimit", "must not be negative")
	}
	return nil
}

func (d Draft) input() model.TryoutCreateInput {
	timeLimit := d.TimeLimit
	isPublic := d.IsPublic
	return model.TryoutCreateInput{
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Category:    strings.TrimSpace(d.Category),
		TimeLimit:   &timeLimit,
		IsPublic:    &isPublic,
	}
}

// Publish creates the tryout described by d, binds ed to it and saves
// every question. When SaveAll fails the created tryout is still
// returned alongside the *SaveAllError.
func Publish(ctx context.Context, creator TryoutCreator, d Draft, ed *Editor) (*model.Tryout, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if ed.Len() == 0 {
		return nil, util.NewValidationError("questions", "please add at least one question")
	}
	if ed.TryoutID() != "" {
		return nil, &util.ConfigurationError{Reason: "editor already belongs to tryout " + ed.TryoutID()}
	}

	t, err := creator.CreateTryout(ctx, d.input())
	if err != nil {
		return nil, err
	}
	if err := ed.bind(t.ID); err != nil {
		return t, err
	}
	if err := ed.SaveAll(ctx); err != nil {
		return t, err
	}
	return t, nil
}
