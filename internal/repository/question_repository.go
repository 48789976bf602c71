package repository

import (
	"tryout_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// Create 追加到测验末尾（position = 当前最大值 + 1）
func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		if err := tx.Model(&model.Question{}).
			Where("tryout_id = ?", q.TryoutID).
			Select("COALESCE(MAX(position), -1)").
			Row().Scan(&maxPos); err != nil {
			return err
		}
		q.Position = maxPos + 1
		return tx.Create(q).Error
	})
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuestionRepository) ListByTryout(tryoutID string) ([]model.Question, error) {
	qs := []model.Question{}
	err := r.DB.Where("tryout_id = ?", tryoutID).
		Order("position asc, created_at asc").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) Update(q *model.Question, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.DB.Model(q).Updates(updates).Error
}

func (r *QuestionRepository) Delete(id string) error {
	res := r.DB.Delete(&model.Question{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
