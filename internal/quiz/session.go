// Package quiz holds the quiz-taking state machine and the scoring rule
// shared with the backend grading endpoint.
package quiz

import (
	"errors"
	"sort"

	"tryout_backend/internal/model"
	"tryout_backend/internal/util"
)

type State int

const (
	NotStarted State = iota
	InProgress
	Submitted
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Submitted:
		return "submitted"
	default:
		return "unknown"
	}
}

var (
	ErrAlreadyStarted   = errors.New("quiz: session already started")
	ErrNotInProgress    = errors.New("quiz: session is not in progress")
	ErrUnknownQuestion  = errors.New("quiz: unknown question")
	ErrInvalidSelection = errors.New("quiz: selection must be a non-empty set of \"true\"/\"false\"")
	ErrSubmitNotReady   = errors.New("quiz: the last question must be current and answered")
)

// Session is one attempt at a tryout. It is not safe for concurrent use.
type Session struct {
	questions []model.Question
	index     map[string]int
	answers   map[string][]string
	state     State
	position  int
	result    model.ScoreResult
}

func NewSession(questions []model.Question) *Session {
	qs := make([]model.Question, len(questions))
	copy(qs, questions)
	index := make(map[string]int, len(qs))
	for i, q := range qs {
		index[q.ID] = i
	}
	return &Session{
		questions: qs,
		index:     index,
		answers:   make(map[string][]string),
	}
}

// Start enters InProgress at the first question with no answers.
// A session without questions cannot start.
func (s *Session) Start() error {
	if s.state != NotStarted {
		return ErrAlreadyStarted
	}
	if len(s.questions) == 0 {
		return &util.ConfigurationError{Reason: "cannot start a tryout without questions"}
	}
	s.position = 0
	s.answers = make(map[string][]string)
	s.state = InProgress
	return nil
}

// Answer records the selection for a question, replacing any earlier one.
// Position is unchanged.
func (s *Session) Answer(questionID string, selection []string) error {
	if s.state != InProgress {
		return ErrNotInProgress
	}
	if _, ok := s.index[questionID]; !ok {
		return ErrUnknownQuestion
	}
	normalized, ok := normalizeSelection(selection)
	if !ok {
		return ErrInvalidSelection
	}
	s.answers[questionID] = normalized
	return nil
}

// Next advances one question. It is refused while the current question is
// unanswered and is a no-op on the last question.
func (s *Session) Next() bool {
	if s.state != InProgress {
		return false
	}
	if !s.IsAnswered(s.questions[s.position].ID) {
		return false
	}
	if s.position >= len(s.questions)-1 {
		return false
	}
	s.position++
	return true
}

// Previous steps back one question; no-op at the first.
func (s *Session) Previous() bool {
	if s.state != InProgress || s.position == 0 {
		return false
	}
	s.position--
	return true
}

// GoTo jumps directly to a question, as the sidebar does.
func (s *Session) GoTo(questionID string) error {
	if s.state != InProgress {
		return ErrNotInProgress
	}
	i, ok := s.index[questionID]
	if !ok {
		return ErrUnknownQuestion
	}
	s.position = i
	return nil
}

// Submit grades the attempt and ends the session.
func (s *Session) Submit() (model.ScoreResult, error) {
	if s.state != InProgress {
		return model.ScoreResult{}, ErrNotInProgress
	}
	last := len(s.questions) - 1
	if s.position != last || !s.IsAnswered(s.questions[last].ID) {
		return model.ScoreResult{}, ErrSubmitNotReady
	}
	s.result = Grade(s.questions, s.answers)
	s.state = Submitted
	return s.result, nil
}

func (s *Session) State() State { return s.state }

func (s *Session) Position() int { return s.position }

func (s *Session) Len() int { return len(s.questions) }

// Current returns the question at the current position. ok is false
// before Start.
func (s *Session) Current() (model.Question, bool) {
	if s.state == NotStarted || len(s.questions) == 0 {
		return model.Question{}, false
	}
	return s.questions[s.position], true
}

func (s *Session) IsAnswered(questionID string) bool {
	_, ok := s.answers[questionID]
	return ok
}

func (s *Session) Selection(questionID string) ([]string, bool) {
	sel, ok := s.answers[questionID]
	if !ok {
		return nil, false
	}
	out := make([]string, len(sel))
	copy(out, sel)
	return out, true
}

// Progress returns answered and total question counts.
func (s *Session) Progress() (answered, total int) {
	return len(s.answers), len(s.questions)
}

func (s *Session) TotalPoints() int {
	return TotalPoints(s.questions)
}

// Result is the graded score; ok is false until Submit succeeds.
func (s *Session) Result() (model.ScoreResult, bool) {
	return s.result, s.state == Submitted
}

func normalizeSelection(selection []string) ([]string, bool) {
	if len(selection) == 0 {
		return nil, false
	}
	seen := make(map[string]bool, 2)
	out := make([]string, 0, 2)
	for _, label := range selection {
		if label != model.LabelTrue && label != model.LabelFalse {
			return nil, false
		}
		if !seen[label] {
			seen[label] = true
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out, true
}
