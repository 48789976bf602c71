package repository

import (
	"strings"
	"time"

	"tryout_backend/internal/model"

	"gorm.io/gorm"
)

type TryoutRepository struct {
	DB *gorm.DB
}

func NewTryoutRepository(db *gorm.DB) *TryoutRepository {
	return &TryoutRepository{DB: db}
}

// TryoutQuery 已解析的列表过滤条件
type TryoutQuery struct {
	Title    string
	From     *time.Time
	To       *time.Time
	IsPublic *bool
}

func (r *TryoutRepository) Create(t *model.Tryout) error {
	return r.DB.Create(t).Error
}

func (r *TryoutRepository) FindByID(id string) (*model.Tryout, error) {
	var t model.Tryout
	err := r.DB.First(&t, "id = ?", id).Error
	return &t, err
}

// FindWithQuestions 加载测验及其按顺序排列的题目
func (r *TryoutRepository) FindWithQuestions(id string) (*model.Tryout, error) {
	var t model.Tryout
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc, created_at asc")
	}).First(&t, "id = ?", id).Error
	if err != nil {
		return &t, err
	}
	t.Count = &model.TryoutCount{Questions: len(t.Questions)}
	return &t, nil
}

func (r *TryoutRepository) Update(t *model.Tryout, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(t).Updates(updates).Error
}

func (r *TryoutRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tryout_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Tryout{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *TryoutRepository) List(q TryoutQuery) ([]model.Tryout, error) {
	query := r.DB.Model(&model.Tryout{})
	if q.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q.Title)+"%")
	}
	if q.From != nil {
		query = query.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("created_at < ?", *q.To)
	}
	if q.IsPublic != nil {
		query = query.Where("is_public = ?", *q.IsPublic)
	}

	ts := []model.Tryout{}
	if err := query.Order("created_at desc").Find(&ts).Error; err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return ts, nil
	}

	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	counts, err := r.countQuestions(ids)
	if err != nil {
		return nil, err
	}
	for i := range ts {
		ts[i].Count = &model.TryoutCount{Questions: counts[ts[i].ID]}
	}
	return ts, nil
}

func (r *TryoutRepository) countQuestions(tryoutIDs []string) (map[string]int, error) {
	type row struct {
		TryoutID string
		Total    int
	}
	var rows []row
	err := r.DB.Model(&model.Question{}).
		Select("tryout_id, COUNT(*) as total").
		Where("tryout_id IN ?", tryoutIDs).
		Group("tryout_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.TryoutID] = r.Total
	}
	return counts, nil
}
