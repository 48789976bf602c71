// Package authoring owns the client-side state for writing a tryout:
// the ordered question list with dirty tracking, and the tryout draft.
package authoring

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tryout_backend/internal/model"
	"tryout_backend/internal/util"

	"go.uber.org/zap"
)

var (
	ErrUnknownQuestion  = errors.New("authoring: unknown question")
	ErrOperationPending = errors.New("authoring: an operation on this question is already in flight")
)

// QuestionBackend is the subset of the data client the editor needs.
type QuestionBackend interface {
	ListQuestions(ctx context.Context, tryoutID string) ([]model.Question, error)
	CreateQuestion(ctx context.Context, tryoutID string, in model.QuestionCreateInput) (*model.Question, error)
	UpdateQuestion(ctx context.Context, id string, in model.QuestionUpdateInput) (*model.Question, error)
	DeleteQuestion(ctx context.Context, id string) error
}

// Question is a snapshot of one editor entry.
type Question struct {
	ID      ID
	Content string
	Answer  bool
	Points  int
	Dirty   bool
	Pending bool
}

type Fields struct {
	Content string
	Answer  bool
	Points  int
}

type entry struct {
	id      ID
	fields  Fields
	dirty   bool
	pending bool

	// alias is the temporary ID a created question was known by.
	alias ID

	// rev increments on every local edit; a save only clears dirty when
	// no edit happened while it was in flight.
	rev uint64
}

func (en *entry) snapshot() Question {
	return Question{
		ID:      en.id,
		Content: en.fields.Content,
		Answer:  en.fields.Answer,
		Points:  en.fields.Points,
		Dirty:   en.dirty,
		Pending: en.pending,
	}
}

// Editor is safe for concurrent use. Network calls run without the lock
// held; an entry with a call in flight rejects further saves and deletes.
type Editor struct {
	mu       sync.Mutex
	backend  QuestionBackend
	tryoutID string
	entries  []*entry
	selected ID
	log      *zap.Logger

	// loading is set while Load waits for the backend; saves and deletes
	// are refused until it finishes.
	loading bool

	stopOnFailure bool
}

type EditorOption func(*Editor)

func WithLogger(l *zap.Logger) EditorOption {
	return func(e *Editor) { e.log = l }
}

// WithStopOnFirstFailure makes SaveAll abort at the first failed save.
func WithStopOnFirstFailure() EditorOption {
	return func(e *Editor) { e.stopOnFailure = true }
}

// NewEditor creates an editor for tryoutID. An empty tryoutID is allowed
// for a tryout that does not exist yet; see Publish.
func NewEditor(backend QuestionBackend, tryoutID string, opts ...EditorOption) *Editor {
	e := &Editor{
		backend:  backend,
		tryoutID: tryoutID,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) TryoutID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tryoutID
}

func (e *Editor) bind(tryoutID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.tryoutID != "" && e.tryoutID != tryoutID {
		return &util.ConfigurationError{Reason: "editor is already bound to tryout " + e.tryoutID}
	}
	e.tryoutID = tryoutID
	return nil
}

// Load replaces the local list with the backend's questions, all clean,
// and selects the first one. Questions added while the load is in flight
// are kept after the loaded ones.
func (e *Editor) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.loading {
		e.mu.Unlock()
		return ErrOperationPending
	}
	for _, en := range e.entries {
		if en.pending {
			e.mu.Unlock()
			return ErrOperationPending
		}
	}
	tryoutID := e.tryoutID
	if tryoutID == "" {
		e.mu.Unlock()
		return &util.ConfigurationError{Reason: "editor is not bound to a tryout"}
	}
	e.loading = true
	snapshot := len(e.entries)
	e.mu.Unlock()

	qs, err := e.backend.ListQuestions(ctx, tryoutID)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.loading = false
	if err != nil {
		e.log.Error("load questions failed", zap.String("tryoutId", tryoutID), zap.Error(err))
		return err
	}

	// deletes are refused while loading, so anything past snapshot was added meanwhile
	added := e.entries[snapshot:]
	entries := make([]*entry, 0, len(qs)+len(added))
	for _, q := range qs {
		entries = append(entries, &entry{
			id:     Persisted(q.ID),
			fields: Fields{Content: q.Content, Answer: q.Answer, Points: q.Points},
		})
	}
	entries = append(entries, added...)

	e.entries = entries
	switch {
	case len(added) > 0 && e.find(e.selected) != nil:
		// keep the selection on a question added during the load
	case len(entries) > 0:
		e.selected = entries[0].id
	default:
		e.selected = ID{}
	}
	return nil
}

// AddQuestion appends a dirty question with a temporary ID and selects it.
func (e *Editor) AddQuestion() ID {
	e.mu.Lock()
	defer e.mu.Unlock()

	en := &entry{
		id: NewTemporaryID(),
		fields: Fields{
			Content: fmt.Sprintf("Question %d", len(e.entries)+1),
			Answer:  true,
			Points:  model.DefaultPoints,
		},
		dirty: true,
	}
	e.entries = append(e.entries, en)
	e.selected = en.id
	return en.id
}

// UpdateQuestion replaces the question's fields locally and marks it dirty.
func (e *Editor) UpdateQuestion(id ID, f Fields) error {
	if f.Points < 1 {
		return util.NewValidationError("points", "must be at least 1")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	en := e.find(id)
	if en == nil {
		return ErrUnknownQuestion
	}
	en.fields = f
	en.dirty = true
	en.rev++
	return nil
}

// SaveQuestion persists one question: create for a temporary ID, update
// for a persisted one. It returns the question's ID after the save, which
// differs from id when a temporary question was created. Saving a clean
// question makes no call.
func (e *Editor) SaveQuestion(ctx context.Context, id ID) (ID, error) {
	e.mu.Lock()
	en := e.find(id)
	if en == nil {
		e.mu.Unlock()
		return id, ErrUnknownQuestion
	}
	if en.pending || e.loading {
		e.mu.Unlock()
		return id, ErrOperationPending
	}
	if !en.dirty {
		e.mu.Unlock()
		return en.id, nil
	}
	tryoutID := e.tryoutID
	current := en.id
	if current.IsTemporary() && tryoutID == "" {
		e.mu.Unlock()
		return id, &util.ConfigurationError{Reason: "editor is not bound to a tryout"}
	}
	en.pending = true
	fields := en.fields
	rev := en.rev
	e.mu.Unlock()

	var (
		saved *model.Question
		err   error
		op    string
	)
	if current.IsTemporary() {
		op = "create"
		saved, err = e.backend.CreateQuestion(ctx, tryoutID, model.QuestionCreateInput{
			Content: fields.Content,
			Answer:  fields.Answer,
			Points:  fields.Points,
		})
	} else {
		op = "update"
		saved, err = e.backend.UpdateQuestion(ctx, current.Key(), model.QuestionUpdateInput{
			Content: &fields.Content,
			Answer:  &fields.Answer,
			Points:  &fields.Points,
		})
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	en.pending = false

	if err != nil {
		e.selected = en.id
		e.log.Warn("save question failed", zap.String("op", op), zap.String("questionId", current.String()), zap.Error(err))
		return current, &util.PersistenceError{Op: op, QuestionID: current.String(), Err: err}
	}

	if current.IsTemporary() {
		en.alias = current
		en.id = Persisted(saved.ID)
		if e.selected == current {
			e.selected = en.id
		}
	}
	if en.rev == rev {
		en.dirty = false
		en.fields = Fields{Content: saved.Content, Answer: saved.Answer, Points: saved.Points}
	}
	return en.id, nil
}

// DeleteQuestion removes a question. Temporary questions are dropped
// locally; persisted ones are removed only after the backend confirms.
func (e *Editor) DeleteQuestion(ctx context.Context, id ID) error {
	e.mu.Lock()
	en := e.find(id)
	if en == nil {
		e.mu.Unlock()
		return ErrUnknownQuestion
	}
	if en.pending || e.loading {
		e.mu.Unlock()
		return ErrOperationPending
	}
	current := en.id
	if current.IsTemporary() {
		e.remove(en)
		e.mu.Unlock()
		return nil
	}
	en.pending = true
	e.mu.Unlock()

	err := e.backend.DeleteQuestion(ctx, current.Key())

	e.mu.Lock()
	defer e.mu.Unlock()
	en.pending = false
	if err != nil {
		e.log.Warn("delete question failed", zap.String("questionId", current.String()), zap.Error(err))
		return &util.PersistenceError{Op: "delete", QuestionID: current.String(), Err: err}
	}
	e.remove(en)
	return nil
}

type SaveFailure struct {
	ID      ID
	Content string
	Err     error
}

// SaveAllError lists the questions SaveAll could not persist. Questions
// in Saved stay persisted; there is no rollback.
type SaveAllError struct {
	Saved    []ID
	Failures []SaveFailure
	// Skipped is only filled when stopping at the first failure.
	Skipped []ID
}

// Failed is the first question that failed.
func (e *SaveAllError) Failed() ID {
	return e.Failures[0].ID
}

func (e *SaveAllError) Error() string {
	first := e.Failures[0]
	return fmt.Sprintf("save all: %d question(s) failed, first %s (%q): %v",
		len(e.Failures), first.ID, first.Content, first.Err)
}

func (e *SaveAllError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// SaveAll saves dirty questions one at a time in list order. By default a
// failed question is reported and the rest are still attempted; with
// WithStopOnFirstFailure the remainder is left dirty instead.
func (e *Editor) SaveAll(ctx context.Context) error {
	e.mu.Lock()
	var todo []Question
	for _, en := range e.entries {
		if en.dirty {
			todo = append(todo, en.snapshot())
		}
	}
	e.mu.Unlock()

	res := &SaveAllError{Saved: make([]ID, 0, len(todo))}
	for i, q := range todo {
		newID, err := e.SaveQuestion(ctx, q.ID)
		if errors.Is(err, ErrUnknownQuestion) {
			// deleted while the others were saving
			continue
		}
		if err != nil {
			res.Failures = append(res.Failures, SaveFailure{ID: q.ID, Content: q.Content, Err: err})
			if e.stopOnFailure {
				for _, rest := range todo[i+1:] {
					res.Skipped = append(res.Skipped, rest.ID)
				}
				break
			}
			continue
		}
		res.Saved = append(res.Saved, newID)
	}

	if len(res.Failures) > 0 {
		e.log.Warn("save all incomplete",
			zap.Int("saved", len(res.Saved)),
			zap.Int("failed", len(res.Failures)),
			zap.Int("skipped", len(res.Skipped)),
		)
		return res
	}
	return nil
}

func (e *Editor) Select(id ID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	en := e.find(id)
	if en == nil {
		return ErrUnknownQuestion
	}
	e.selected = en.id
	return nil
}

// Selected returns the selected question; ok is false when none is.
func (e *Editor) Selected() (Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	en := e.find(e.selected)
	if en == nil {
		return Question{}, false
	}
	return en.snapshot(), true
}

func (e *Editor) Get(id ID) (Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	en := e.find(id)
	if en == nil {
		return Question{}, false
	}
	return en.snapshot(), true
}

// Questions returns snapshots in list order.
func (e *Editor) Questions() []Question {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Question, len(e.entries))
	for i, en := range e.entries {
		out[i] = en.snapshot()
	}
	return out
}

// Filter returns questions whose content contains query, case-insensitively.
func (e *Editor) Filter(query string) []Question {
	needle := strings.ToLower(query)
	var out []Question
	for _, q := range e.Questions() {
		if strings.Contains(strings.ToLower(q.Content), needle) {
			out = append(out, q)
		}
	}
	return out
}

func (e *Editor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}

func (e *Editor) DirtyCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, en := range e.entries {
		if en.dirty {
			n++
		}
	}
	return n
}

func (e *Editor) TotalPoints() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, en := range e.entries {
		total += en.fields.Points
	}
	return total
}

func (e *Editor) find(id ID) *entry {
	if id.IsZero() {
		return nil
	}
	for _, en := range e.entries {
		if en.id == id || en.alias == id {
			return en
		}
	}
	return nil
}

// remove drops en and moves the selection to the first remaining entry
// when en was selected. Caller holds mu.
func (e *Editor) remove(en *entry) {
	for i, cur := range e.entries {
		if cur == en {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			break
		}
	}
	if e.selected == en.id {
		e.selected = ID{}
		if len(e.entries) > 0 {
			e.selected = e.entries[0].id
		}
	}
}
