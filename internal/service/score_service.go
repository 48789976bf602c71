package service

import (
	"context"

	"tryout_backend/internal/model"
	"tryout_backend/internal/quiz"
	"tryout_backend/internal/repository"
	"tryout_backend/pkg/monitoring"

	"github.com/pkg/errors"
)

// ScoringService 无状态判分，不保存任何作答记录
type ScoringService struct {
	TryoutRepo *repository.TryoutRepository
}

func NewScoringService(tryoutRepo *repository.TryoutRepository) *ScoringService {
	return &ScoringService{TryoutRepo: tryoutRepo}
}

func (s *ScoringService) Score(ctx context.Context, tryoutID string, answers map[string][]string) (*model.ScoreResult, error) {
	t, err := s.TryoutRepo.FindWithQuestions(tryoutID)
	if err != nil {
		return nil, errors.Wrapf(tryoutNotFound(err), "score tryout %s", tryoutID)
	}

	res := quiz.Grade(t.Questions, answers)
	monitoring.ObserveScore(res.Score, res.TotalPoints)
	return &res, nil
}
