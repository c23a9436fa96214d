package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/guruai/guruai/internal/guruerr"
	"github.com/guruai/guruai/pkg/models"
)

// storeFactories builds each backend fresh for the shared contract tests.
func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"sqlite": func(t *testing.T) Store {
			db, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
			if err != nil {
				t.Fatalf("open sqlite store: %v", err)
			}
			return db
		},
	}
}

func TestStoreContract(t *testing.T) {
	for name, factory := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("create and get", func(t *testing.T) {
				store := factory(t)
				defer store.Close()
				ctx := context.Background()

				s, err := store.Create(ctx, "teacher-1")
				if err != nil {
					t.Fatalf("create: %v", err)
				}
				if s.Version != 1 {
					t.Errorf("new session version = %d, want 1", s.Version)
				}

				got, err := store.Get(ctx, s.ID)
				if err != nil {
					t.Fatalf("get: %v", err)
				}
				if got.UserID != "teacher-1" {
					t.Errorf("user = %q, want teacher-1", got.UserID)
				}
				if len(got.Messages) != 0 {
					t.Errorf("new session has %d messages, want 0", len(got.Messages))
				}
			})

			t.Run("get unknown session", func(t *testing.T) {
				store := factory(t)
				defer store.Close()

				_, err := store.Get(context.Background(), "nope")
				if guruerr.KindOf(err) != guruerr.KindSessionNotFound {
					t.Errorf("expected session_not_found, got %v", err)
				}
			})

			t.Run("append preserves order", func(t *testing.T) {
				store := factory(t)
				defer store.Close()
				ctx := context.Background()

				s, _ := store.Create(ctx, "teacher-1")
				version := s.Version
				for i, content := range []string{"first", "second", "third"} {
					role := models.RoleUser
					if i%2 == 1 {
						role = models.RoleAgent
					}
					v, err := store.AppendMessage(ctx, s.ID, models.Message{Role: role, Content: content}, version)
					if err != nil {
						t.Fatalf("append %d: %v", i, err)
					}
					version = v
				}

				got, err := store.Get(ctx, s.ID)
				if err != nil {
					t.Fatalf("get: %v", err)
				}
				if len(got.Messages) != 3 {
					t.Fatalf("message count = %d, want 3", len(got.Messages))
				}
				for i, want := range []string{"first", "second", "third"} {
					if got.Messages[i].Content != want {
						t.Errorf("message %d = %q, want %q", i, got.Messages[i].Content, want)
					}
				}
				if got.Version != 4 {
					t.Errorf("version after 3 appends = %d, want 4", got.Version)
				}
			})

			t.Run("append version conflict", func(t *testing.T) {
				store := factory(t)
				defer store.Close()
				ctx := context.Background()

				s, _ := store.Create(ctx, "teacher-1")
				if _, err := store.AppendMessage(ctx, s.ID, models.Message{Role: models.RoleUser, Content: "hi"}, s.Version); err != nil {
					t.Fatalf("first append: %v", err)
				}

				// Stale version: the first append bumped it.
				_, err := store.AppendMessage(ctx, s.ID, models.Message{Role: models.RoleUser, Content: "again"}, s.Version)
				if guruerr.KindOf(err) != guruerr.KindVersionConflict {
					t.Errorf("expected version_conflict, got %v", err)
				}

				got, _ := store.Get(ctx, s.ID)
				if len(got.Messages) != 1 {
					t.Errorf("conflicting append must not be stored, have %d messages", len(got.Messages))
				}
			})

			t.Run("replace context last write wins", func(t *testing.T) {
				store := factory(t)
				defer store.Close()
				ctx := context.Background()

				s, _ := store.Create(ctx, "teacher-1")
				first := models.SessionContext{Language: "hindi", Subject: "math", GradeLevels: []models.GradeLevel{2, 3}}
				second := models.SessionContext{Language: "marathi", Subject: "science", GradeLevels: []models.GradeLevel{5}}

				if err := store.ReplaceContext(ctx, s.ID, first); err != nil {
					t.Fatalf("replace 1: %v", err)
				}
				if err := store.ReplaceContext(ctx, s.ID, second); err != nil {
					t.Fatalf("replace 2: %v", err)
				}

				got, _ := store.Get(ctx, s.ID)
				if got.Context.Language != "marathi" || got.Context.Subject != "science" {
					t.Errorf("context = %+v, want the second write", got.Context)
				}
				if len(got.Context.GradeLevels) != 1 || got.Context.GradeLevels[0] != 5 {
					t.Errorf("grade levels = %v, want [5]", got.Context.GradeLevels)
				}
			})

			t.Run("replace context on unknown session", func(t *testing.T) {
				store := factory(t)
				defer store.Close()

				err := store.ReplaceContext(context.Background(), "nope", models.SessionContext{})
				if guruerr.KindOf(err) != guruerr.KindSessionNotFound {
					t.Errorf("expected session_not_found, got %v", err)
				}
			})
		})
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	s, _ := store.Create(ctx, "teacher-1")
	if _, err := store.AppendMessage(ctx, s.ID, models.Message{Role: models.RoleUser, Content: "original"}, 1); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, _ := store.Get(ctx, s.ID)
	got.Messages[0].Content = "mutated"

	again, _ := store.Get(ctx, s.ID)
	if again.Messages[0].Content != "original" {
		t.Error("mutating a returned session leaked into store state")
	}
}
