package quiz

import (
	"errors"
	"testing"

	"tryout_backend/internal/model"
	"tryout_backend/internal/util"
)

func question(id string, answer bool, points int) model.Question {
	q := model.Question{Content: "q " + id, Answer: answer, Points: points}
	q.ID = id
	return q
}

func threeQuestions() []model.Question {
	return []model.Question{
		question("a", true, 1),
		question("b", false, 2),
		question("c", true, 3),
	}
}

func TestScoringScenario(t *testing.T) {
	s := NewSession(threeQuestions())
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i, id := range []string{"a", "b", "c"} {
		if err := s.Answer(id, []string{"true"}); err != nil {
			t.Fatalf("answer %s: %v", id, err)
		}
		if i < 2 && !s.Next() {
			t.Fatalf("next refused after answering %s", id)
		}
	}

	res, err := s.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Score != 4 {
		t.Errorf("score = %d, want 4", res.Score)
	}
	if res.TotalPoints != 6 || res.Correct != 2 || res.Total != 3 {
		t.Errorf("unexpected result %+v", res)
	}
	if s.State() != Submitted {
		t.Errorf("state = %s, want submitted", s.State())
	}
}

func TestStartWithoutQuestions(t *testing.T) {
	s := NewSession(nil)
	err := s.Start()
	var cerr *util.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if s.State() != NotStarted {
		t.Errorf("state = %s, want not_started", s.State())
	}
	if _, ok := s.Current(); ok {
		t.Error("empty session must not have a current question")
	}
}

func TestStartTwice(t *testing.T) {
	s := NewSession(threeQuestions())
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second start: got %v", err)
	}
}

func TestNavigation(t *testing.T) {
	s := NewSession(threeQuestions())
	if s.Next() || s.Previous() {
		t.Fatal("navigation must be refused before start")
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	if s.Previous() {
		t.Error("previous at position 0 should be a no-op")
	}
	if s.Next() {
		t.Error("next must be refused while the current question is unanswered")
	}
	if s.Position() != 0 {
		t.Fatalf("position = %d, want 0", s.Position())
	}

	s.Answer("a", []string{"false"})
	if !s.Next() || s.Position() != 1 {
		t.Fatalf("next after answer: position = %d", s.Position())
	}
	if !s.Previous() || s.Position() != 0 {
		t.Fatalf("previous: position = %d", s.Position())
	}

	s.Next()
	s.Answer("b", []string{"false"})
	s.Next()
	s.Answer("c", []string{"true"})
	if s.Next() {
		t.Error("next at the last question should be a no-op")
	}
	if s.Position() != 2 {
		t.Errorf("position = %d, want 2", s.Position())
	}
}

func TestSubmitRefused(t *testing.T) {
	s := NewSession(threeQuestions())
	if _, err := s.Submit(); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("submit before start: %v", err)
	}
	s.Start()

	s.Answer("a", []string{"true"})
	s.Answer("b", []string{"true"})
	s.Answer("c", []string{"true"})
	// all answered but not on the last question
	if _, err := s.Submit(); !errors.Is(err, ErrSubmitNotReady) {
		t.Fatalf("submit away from last question: %v", err)
	}

	if err := s.GoTo("c"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestSubmitRequiresLastAnswered(t *testing.T) {
	s := NewSession(threeQuestions())
	s.Start()
	s.GoTo("c")
	if _, err := s.Submit(); !errors.Is(err, ErrSubmitNotReady) {
		t.Fatalf("got %v", err)
	}
}

func TestSubmittedIsTerminal(t *testing.T) {
	s := NewSession([]model.Question{question("only", true, 5)})
	s.Start()
	s.Answer("only", []string{"true"})
	res, err := s.Submit()
	if err != nil || res.Score != 5 {
		t.Fatalf("submit: %+v %v", res, err)
	}

	if err := s.Answer("only", []string{"false"}); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("answer after submit: %v", err)
	}
	if s.Next() || s.Previous() {
		t.Error("navigation after submit must be refused")
	}
	if _, err := s.Submit(); !errors.Is(err, ErrNotInProgress) {
		t.Errorf("second submit: %v", err)
	}
	if got, ok := s.Result(); !ok || got.Score != 5 {
		t.Errorf("result = %+v, %v", got, ok)
	}
}

func TestAnswerOverwrites(t *testing.T) {
	s := NewSession([]model.Question{question("x", false, 2)})
	s.Start()
	s.Answer("x", []string{"true"})
	s.Answer("x", []string{"false"})

	sel, ok := s.Selection("x")
	if !ok || len(sel) != 1 || sel[0] != "false" {
		t.Fatalf("selection = %v", sel)
	}
	res, _ := s.Submit()
	if res.Score != 2 {
		t.Errorf("score = %d, want 2", res.Score)
	}
}

func TestAnswerValidation(t *testing.T) {
	s := NewSession(threeQuestions())
	s.Start()

	cases := []struct {
		name string
		id   string
		sel  []string
		want error
	}{
		{"unknown question", "zzz", []string{"true"}, ErrUnknownQuestion},
		{"empty selection", "a", nil, ErrInvalidSelection},
		{"bad label", "a", []string{"yes"}, ErrInvalidSelection},
		{"ok", "a", []string{"true", "true"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Answer(tc.id, tc.sel)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	sel, _ := s.Selection("a")
	if len(sel) != 1 {
		t.Errorf("duplicate labels should collapse, got %v", sel)
	}
}

func TestBothLabelsNeverMatch(t *testing.T) {
	qs := []model.Question{question("a", true, 3)}
	res := Grade(qs, map[string][]string{"a": {"false", "true"}})
	if res.Score != 0 {
		t.Errorf("score = %d, want 0", res.Score)
	}
}

func TestUnvisitedQuestionsScoreZero(t *testing.T) {
	s := NewSession(threeQuestions())
	s.Start()
	s.GoTo("c")
	s.Answer("c", []string{"true"})
	res, err := s.Submit()
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 3 {
		t.Errorf("score = %d, want 3", res.Score)
	}
	if answered, total := s.Progress(); answered != 1 || total != 3 {
		t.Errorf("progress = %d/%d", answered, total)
	}
}
