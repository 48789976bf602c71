package quiz

import (
	"tryout_backend/internal/model"
)

// Matches reports whether a recorded selection equals the question's
// canonical answer label. Absent or multi-label selections never match.
func Matches(q model.Question, selection []string) bool {
	return len(selection) == 1 && selection[0] == q.AnswerLabel()
}

// Grade sums the points of every question whose selection matches its
// answer. Questions missing from answers contribute nothing.
func Grade(questions []model.Question, answers map[string][]string) model.ScoreResult {
	res := model.ScoreResult{Total: len(questions)}
	for _, q := range questions {
		res.TotalPoints += q.Points
		if Matches(q, answers[q.ID]) {
			res.Score += q.Points
			res.Correct++
		}
	}
	return res
}

func TotalPoints(questions []model.Question) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	return total
}
