package authoring

import (
	"context"
	"errors"
	"testing"

	"tryout_backend/internal/util"
)

func TestDraftValidate(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		field string
	}{
		{"missing title", Draft{Title: "  ", Category: "go"}, "title"},
		{"missing category", Draft{Title: "Basics", Category: ""}, "category"},
		{"negative time", Draft{Title: "Basics", Category: "go", TimeLimit: -1}, "timeLimit"},
		{"ok", Draft{Title: "Basics", Category: "go", TimeLimit: 30}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			var verr *util.ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("got %v, want ValidationError on %s", err, tc.field)
			}
		})
	}
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	ed := NewEditor(backend, "")
	ed.AddQuestion()
	ed.AddQuestion()

	d := NewDraft()
	d.Title = "Go basics"
	d.Category = "programming"

	tr, err := Publish(ctx, backend, d, ed)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if tr.TimeLimit != 30 || ed.TryoutID() != tr.ID {
		t.Errorf("unexpected tryout %+v bound to %q", tr, ed.TryoutID())
	}
	if ed.DirtyCount() != 0 || backend.stored() != 2 {
		t.Errorf("dirty = %d stored = %d", ed.DirtyCount(), backend.stored())
	}

	var cerr *util.ConfigurationError
	if _, err := Publish(ctx, backend, d, ed); !errors.As(err, &cerr) {
		t.Errorf("publishing a bound editor: got %v", err)
	}
}

func TestPublishValidation(t *testing.T) {
	ctx := context.Background()
	backend := newFakeBackend()
	d := Draft{Title: "T", Category: "C"}

	var verr *util.ValidationError
	if _, err := Publish(ctx, backend, d, NewEditor(backend, "")); !errors.As(err, &verr) || verr.Field != "questions" {
		t.Fatalf("empty editor: got %v", err)
	}
	if len(backend.tryouts) != 0 {
		t.Error("no tryout should be created when validation fails")
	}

	backend.failTryout = true
	ed := NewEditor(backend, "")
	ed.AddQuestion()
	if _, err := Publish(ctx, backend, d, ed); !errors.Is(err, errBackend) {
		t.Errorf("create failure: got %v", err)
	}
	if ed.TryoutID() != "" {
		t.Error("editor must stay unbound when the tryout was not created")
	}
}
