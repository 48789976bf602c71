package authoring

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tryout_backend/internal/model"
)

var errBackend = errors.New("backend unavailable")

// fakeBackend is an in-memory QuestionBackend + TryoutCreator.
type fakeBackend struct {
	mu        sync.Mutex
	seq       int
	questions map[string]model.Question
	tryouts   map[string]model.Tryout

	creates, updates, deletes int

	failContent map[string]bool // create/update fails for this content
	failDelete  map[string]bool
	failTryout  bool

	// when set, CreateQuestion signals entered and waits for release
	entered chan struct{}
	release chan struct{}

	// same for ListQuestions
	listEntered chan struct{}
	listRelease chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		questions:   map[string]model.Question{},
		tryouts:     map[string]model.Tryout{},
		failContent: map[string]bool{},
		failDelete:  map[string]bool{},
	}
}

func (f *fakeBackend) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *fakeBackend) seed(tryoutID string, qs ...model.Question) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, q := range qs {
		q.ID = f.nextID("q")
		q.TryoutID = tryoutID
		q.Position = i
		f.questions[q.ID] = q
	}
}

func (f *fakeBackend) ListQuestions(ctx context.Context, tryoutID string) ([]model.Question, error) {
	if f.listEntered != nil {
		f.listEntered <- struct{}{}
		<-f.listRelease
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Question, 0)
	for i := 0; i < len(f.questions)+f.seq; i++ {
		for _, q := range f.questions {
			if q.TryoutID == tryoutID && q.Position == i {
				out = append(out, q)
			}
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateQuestion(ctx context.Context, tryoutID string, in model.QuestionCreateInput) (*model.Question, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if f.failContent[in.Content] {
		return nil, errBackend
	}
	q := model.Question{TryoutID: tryoutID, Content: in.Content, Answer: in.Answer, Points: in.Points, Position: len(f.questions)}
	q.ID = f.nextID("q")
	f.questions[q.ID] = q
	return &q, nil
}

func (f *fakeBackend) UpdateQuestion(ctx context.Context, id string, in model.QuestionUpdateInput) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	q, ok := f.questions[id]
	if !ok {
		return nil, errBackend
	}
	if in.Content != nil && f.failContent[*in.Content] {
		return nil, errBackend
	}
	if in.Content != nil {
		q.Content = *in.Content
	}
	if in.Answer != nil {
		q.Answer = *in.Answer
	}
	if in.Points != nil {
		q.Points = *in.Points
	}
	f.questions[id] = q
	return &q, nil
}

func (f *fakeBackend) DeleteQuestion(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	if f.failDelete[id] {
		return errBackend
	}
	if _, ok := f.questions[id]; !ok {
		return errBackend
	}
	delete(f.questions, id)
	return nil
}

func (f *fakeBackend) CreateTryout(ctx context.Context, in model.TryoutCreateInput) (*model.Tryout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTryout {
		return nil, errBackend
	}
	t := model.Tryout{Title: in.Title, Category: in.Category, Description: in.Description}
	if in.TimeLimit != nil {
		t.TimeLimit = *in.TimeLimit
	}
	t.ID = f.nextID("t")
	f.tryouts[t.ID] = t
	return &t, nil
}

func (f *fakeBackend) counts() (creates, updates, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.creates, f.updates, f.deletes
}

func (f *fakeBackend) stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.questions)
}
