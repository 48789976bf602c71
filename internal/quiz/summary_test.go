package quiz

import (
	"testing"

	"tryout_backend/internal/model"
)

func TestSummarize(t *testing.T) {
	cases := []struct {
		name      string
		timeLimit int
		questions []model.Question
		want      Summary
	}{
		{
			name:      "no questions falls back to divisor 1",
			timeLimit: 30,
			want:      Summary{QuestionCount: 0, TotalPoints: 0, TimeLimit: 30, AvgMinutesPerQuestion: 30},
		},
		{
			name:      "rounded average",
			timeLimit: 10,
			questions: threeQuestions(),
			want:      Summary{QuestionCount: 3, TotalPoints: 6, TimeLimit: 10, AvgMinutesPerQuestion: 3},
		},
		{
			name:      "rounds half up",
			timeLimit: 5,
			questions: threeQuestions()[:2],
			want:      Summary{QuestionCount: 2, TotalPoints: 3, TimeLimit: 5, AvgMinutesPerQuestion: 3},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Summarize(model.Tryout{TimeLimit: tc.timeLimit}, tc.questions)
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
