package service

import (
	"context"
	"strings"

	"tryout_backend/internal/model"
	"tryout_backend/internal/repository"
	"tryout_backend/internal/util"
	"tryout_backend/pkg/logger"
	"tryout_backend/pkg/monitoring"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuestionService struct {
	Repo       *repository.QuestionRepository
	TryoutRepo *repository.TryoutRepository
	Cache      *TryoutCache
}

func NewQuestionService(repo *repository.QuestionRepository, tryoutRepo *repository.TryoutRepository, cache *TryoutCache) *QuestionService {
	return &QuestionService{Repo: repo, TryoutRepo: tryoutRepo, Cache: cache}
}

func questionNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrQuestionNotFound
	}
	return err
}

func (s *QuestionService) ensureTryout(id string) error {
	if _, err := s.TryoutRepo.FindByID(id); err != nil {
		return errors.Wrapf(tryoutNotFound(err), "tryout %s", id)
	}
	return nil
}

// ListByTryout 按创建顺序返回题目
func (s *QuestionService) ListByTryout(ctx context.Context, tryoutID string) ([]model.Question, error) {
	if err := s.ensureTryout(tryoutID); err != nil {
		return nil, err
	}
	qs, err := s.Repo.ListByTryout(tryoutID)
	if err != nil {
		return nil, errors.Wrapf(err, "list questions of tryout %s", tryoutID)
	}
	return qs, nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, errors.Wrapf(questionNotFound(err), "get question %s", id)
	}
	return q, nil
}

func (s *QuestionService) Create(ctx context.Context, tryoutID string, in model.QuestionCreateInput) (*model.Question, error) {
	q := &model.Question{
		TryoutID: tryoutID,
		Content:  strings.TrimSpace(in.Content),
		Answer:   in.Answer,
		Points:   in.Points,
	}
	if q.Points == 0 {
		q.Points = model.DefaultPoints
	}
	if err := validateQuestion(q.Content, q.Points); err != nil {
		return nil, err
	}
	if err := s.ensureTryout(tryoutID); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(q); err != nil {
		logger.Log.Error("create question failed", zap.String("tryoutId", tryoutID), zap.Error(err))
		return nil, errors.Wrap(err, "create question")
	}
	s.Cache.Invalidate(ctx, tryoutID)
	monitoring.RecordMutation(util.ResourceQuestion, "create")
	return q, nil
}

func (s *QuestionService) Update(ctx context.Context, id string, in model.QuestionUpdateInput) (*model.Question, error) {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, errors.Wrapf(questionNotFound(err), "update question %s", id)
	}

	updates := map[string]interface{}{}
	if in.Content != nil {
		q.Content = strings.TrimSpace(*in.Content)
		updates["content"] = q.Content
	}
	if in.Answer != nil {
		q.Answer = *in.Answer
		updates["answer"] = q.Answer
	}
	if in.Points != nil {
		q.Points = *in.Points
		updates["points"] = q.Points
	}
	if err := validateQuestion(q.Content, q.Points); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(q, updates); err != nil {
		logger.Log.Error("update question failed", zap.String("questionId", id), zap.Error(err))
		return nil, errors.Wrapf(err, "update question %s", id)
	}
	s.Cache.Invalidate(ctx, q.TryoutID)
	monitoring.RecordMutation(util.ResourceQuestion, "update")
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	q, err := s.Repo.FindByID(id)
	if err != nil {
		return errors.Wrapf(questionNotFound(err), "delete question %s", id)
	}
	if err := s.Repo.Delete(id); err != nil {
		return errors.Wrapf(questionNotFound(err), "delete question %s", id)
	}
	s.Cache.Invalidate(ctx, q.TryoutID)
	monitoring.RecordMutation(util.ResourceQuestion, "delete")
	return nil
}

func validateQuestion(content string, points int) error {
	if content == "" {
		return util.NewValidationError("content", "is required")
	}
	if points < 1 {
		return util.NewValidationError("points", "must be at least 1")
	}
	return nil
}
