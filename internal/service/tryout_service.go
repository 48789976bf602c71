package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tryout_backend/internal/model"
	"tryout_backend/internal/quiz"
	"tryout_backend/internal/repository"
	"tryout_backend/internal/util"
	"tryout_backend/pkg/logger"
	"tryout_backend/pkg/monitoring"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TryoutService struct {
	Repo    *repository.TryoutRepository
	Cache   *TryoutCache
	Storage *StorageService
}

func NewTryoutService(repo *repository.TryoutRepository, cache *TryoutCache, storage *StorageService) *TryoutService {
	return &TryoutService{Repo: repo, Cache: cache, Storage: storage}
}

func tryoutNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrTryoutNotFound
	}
	return err
}

// List 按标题/创建日期/公开状态过滤
func (s *TryoutService) List(ctx context.Context, f model.TryoutFilter) ([]model.Tryout, error) {
	from, err := util.ParseDateBound(f.StartDate, false)
	if err != nil {
		return nil, errors.Wrapf(util.ErrInvalidFilter, "startDate %q", f.StartDate)
	}
	to, err := util.ParseDateBound(f.EndDate, true)
	if err != nil {
		return nil, errors.Wrapf(util.ErrInvalidFilter, "endDate %q", f.EndDate)
	}
	if from != nil && to != nil {
		// 纯日期的 endDate 已推到次日零点
		last := *to
		if util.IsDateOnly(f.EndDate) {
			last = last.Add(-time.Nanosecond)
		}
		if last.Before(*from) {
			return nil, errors.Wrap(util.ErrInvalidFilter, "startDate must not be after endDate")
		}
	}

	ts, err := s.Repo.List(repository.TryoutQuery{
		Title:    strings.TrimSpace(f.Title),
		From:     from,
		To:       to,
		IsPublic: f.IsPublic,
	})
	if err != nil {
		return nil, errors.Wrap(err, "list tryouts")
	}
	return ts, nil
}

// Get 返回带题目的测验详情，优先读缓存
func (s *TryoutService) Get(ctx context.Context, id string) (*model.Tryout, error) {
	if t, ok := s.Cache.Get(ctx, id); ok {
		return t, nil
	}

	t, err := s.Repo.FindWithQuestions(id)
	if err != nil {
		return nil, errors.Wrapf(tryoutNotFound(err), "get tryout %s", id)
	}
	t.TotalPoints = quiz.TotalPoints(t.Questions)

	s.Cache.Set(ctx, t)
	return t, nil
}

func (s *TryoutService) Create(ctx context.Context, in model.TryoutCreateInput) (*model.Tryout, error) {
	t := &model.Tryout{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		TimeLimit:   model.DefaultTimeLimit,
	}
	if in.TimeLimit != nil {
		t.TimeLimit = *in.TimeLimit
	}
	if in.IsPublic != nil {
		t.IsPublic = *in.IsPublic
	}
	if err := validateTryout(t.Title, t.Category, t.TimeLimit); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(t); err != nil {
		logger.Log.Error("create tryout failed", zap.String("title", t.Title), zap.Error(err))
		return nil, errors.Wrap(err, "create tryout")
	}
	t.Count = &model.TryoutCount{}
	monitoring.RecordMutation(util.ResourceTryout, "create")
	return t, nil
}

// Update 只修改请求中出现的字段
func (s *TryoutService) Update(ctx context.Context, id string, in model.TryoutUpdateInput) (*model.Tryout, error) {
	t, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, errors.Wrapf(tryoutNotFound(err), "update tryout %s", id)
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		t.Title = strings.TrimSpace(*in.Title)
		updates["title"] = t.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		t.Category = strings.TrimSpace(*in.Category)
		updates["category"] = t.Category
	}
	if in.TimeLimit != nil {
		t.TimeLimit = *in.TimeLimit
		updates["time_limit"] = t.TimeLimit
	}
	if in.IsPublic != nil {
		updates["is_public"] = *in.IsPublic
	}
	if err := validateTryout(t.Title, t.Category, t.TimeLimit); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(t, updates); err != nil {
		logger.Log.Error("update tryout failed", zap.String("tryoutId", id), zap.Error(err))
		return nil, errors.Wrapf(err, "update tryout %s", id)
	}
	s.Cache.Invalidate(ctx, id)
	monitoring.RecordMutation(util.ResourceTryout, "update")

	updated, err := s.Repo.FindWithQuestions(id)
	if err != nil {
		return nil, errors.Wrapf(tryoutNotFound(err), "reload tryout %s", id)
	}
	updated.TotalPoints = quiz.TotalPoints(updated.Questions)
	return updated, nil
}

func (s *TryoutService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return errors.Wrapf(tryoutNotFound(err), "delete tryout %s", id)
	}
	s.Cache.Invalidate(ctx, id)
	monitoring.RecordMutation(util.ResourceTryout, "delete")
	return nil
}

// Export 把测验及题目序列化为 JSON 快照写入对象存储
func (s *TryoutService) Export(ctx context.Context, id string) (*model.ExportResult, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	snapshot, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot")
	}

	filename := fmt.Sprintf("tryouts/%s-%s.json", t.ID, time.Now().Format("20060102150405"))
	url, err := s.Storage.Upload(ctx, filename, bytes.NewReader(snapshot), int64(len(snapshot)), util.MimeJSON)
	if err != nil {
		logger.Log.Error("export tryout failed", zap.String("tryoutId", id), zap.Error(err))
		return nil, errors.Wrapf(err, "upload snapshot for tryout %s", id)
	}

	logger.Log.Info("tryout exported", zap.String("tryoutId", id), zap.String("url", url))
	return &model.ExportResult{URL: url}, nil
}

func validateTryout(title, category string, timeLimit int) error {
	if title == "" {
		return util.NewValidationError("title", "is required")
	}
	if category == "" {
		return util.NewValidationError("category", "is required")
	}
	if timeLimit < 0 {
		return util.NewValidationError("timeLimit", "must not be negative")
	}
	return nil
}
