package model

// Question 判断题
// swagger:model Question
type Question struct {
	UUIDBase
	TryoutID string `gorm:"index;type:varchar(36);not null" json:"tryoutId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Answer   bool   `gorm:"not null" json:"answer"`
	Points   int    `gorm:"not null" json:"points"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

func (Question) TableName() string {
	return "questions"
}

const DefaultPoints = 1

// Option labels for a true/false question.
const (
	LabelTrue  = "true"
	LabelFalse = "false"
)

// AnswerLabel 返回正确答案对应的选项标签
func (q Question) AnswerLabel() string {
	if q.Answer {
		return LabelTrue
	}
	return LabelFalse
}

type QuestionCreateInput struct {
	Content string `json:"content" binding:"required"`
	Answer  bool   `json:"answer"`
	Points  int    `json:"points,omitempty"`
}

type QuestionUpdateInput struct {
	Content *string `json:"content,omitempty"`
	Answer  *bool   `json:"answer,omitempty"`
	Points  *int    `json:"points,omitempty"`
}
