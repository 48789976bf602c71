package quiz

import (
	"math"

	"tryout_backend/internal/model"
)

// Summary 详情页展示用的统计
type Summary struct {
	QuestionCount         int `json:"questionCount"`
	TotalPoints           int `json:"totalPoints"`
	TimeLimit             int `json:"timeLimit"`
	AvgMinutesPerQuestion int `json:"avgMinutesPerQuestion"`
}

func Summarize(t model.Tryout, questions []model.Question) Summary {
	divisor := len(questions)
	if divisor == 0 {
		divisor = 1
	}
	return Summary{
		QuestionCount:         len(questions),
		TotalPoints:           TotalPoints(questions),
		TimeLimit:             t.TimeLimit,
		AvgMinutesPerQuestion: int(math.Round(float64(t.TimeLimit) / float64(divisor))),
	}
}
