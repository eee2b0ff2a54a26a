package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	log := logger.New(logger.Config{Level: "error", Format: "json", Output: "stderr"})
	s, err := store.Open(context.Background(), store.Config{
		DSN:          "file::memory:?cache=shared",
		MaxOpenConns: 1,
		AutoMigrate:  true,
		LogLevel:     "silent",
	}, log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestUserRepository_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := s.Users()

	u := &store.User{Username: "alice", Email: "alice@example.com", PasswordHash: "$2a$04$hash", Role: "USER"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("Create did not assign an ID")
	}

	got, err := users.ByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.Username != "alice" || got.Email != "alice@example.com" {
		t.Fatalf("ByID returned %+v", got)
	}

	byName, err := users.ByUsername(ctx, "alice")
	if err != nil || byName == nil {
		t.Fatalf("ByUsername: %v, %v", byName, err)
	}

	missing, err := users.ByUsername(ctx, "nobody")
	if err != nil {
		t.Fatalf("ByUsername(nobody): %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for unknown username")
	}

	got.Email = "alice2@example.com"
	if err := users.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := users.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := users.ByID(ctx, u.ID); err == nil {
		t.Fatal("expected not-found after delete")
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := s.Users()

	if err := users.Create(ctx, &store.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h", Role: "USER"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	err := users.Create(ctx, &store.User{Username: "bob", Email: "bob2@example.com", PasswordHash: "h", Role: "USER"})
	if err == nil {
		t.Fatal("expected conflict for duplicate username")
	}
	appErr, ok := apperr.AsAppError(err)
	if !ok || appErr.Code != apperr.ErrCodeConflict {
		t.Fatalf("expected conflict AppError, got %v", err)
	}
}

func TestUserRepository_FindCredential(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	users := s.Users()

	if err := users.Create(ctx, &store.User{Username: "carol", Email: "carol@example.com", PasswordHash: "$2a$04$h", Role: "ADMIN"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	cred, err := users.FindCredential(ctx, "carol")
	if err != nil {
		t.Fatalf("FindCredential: %v", err)
	}
	if cred == nil || cred.PasswordHash != "$2a$04$h" {
		t.Fatalf("unexpected credential: %+v", cred)
	}
	if len(cred.Roles) != 1 || cred.Roles[0] != "ADMIN" {
		t.Fatalf("roles = %v, want [ADMIN]", cred.Roles)
	}

	cred, err = users.FindCredential(ctx, "unknown")
	if err != nil || cred != nil {
		t.Fatalf("unknown user: cred=%v err=%v, want nil,nil", cred, err)
	}
}

func TestNotFoundTranslation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Quizzes().ByID(ctx, 9999)
	if err == nil {
		t.Fatal("expected error for missing quiz")
	}
	appErr, ok := apperr.AsAppError(err)
	if !ok || appErr.Code != apperr.ErrCodeNotFound {
		t.Fatalf("expected not-found AppError, got %v", err)
	}

	var target *apperr.AppError
	if !errors.As(err, &target) {
		t.Fatal("error should unwrap to *apperr.AppError")
	}
}

func TestQuizAndChildren(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	quiz := &store.Quiz{Title: "Shapes", DifficultyLevel: "EASY"}
	if err := s.Quizzes().Create(ctx, quiz); err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	q1 := &store.Question{QuizID: quiz.ID, Text: "Which shape has 3 sides?", Type: "MULTIPLE_CHOICE"}
	q2 := &store.Question{QuizID: quiz.ID, Text: "Which shape is round?", Type: "MULTIPLE_CHOICE"}
	for _, q := range []*store.Question{q1, q2} {
		if err := s.Questions().Create(ctx, q); err != nil {
			t.Fatalf("create question: %v", err)
		}
	}

	for _, a := range []*store.Answer{
		{QuestionID: q1.ID, Text: "Triangle", IsCorrect: true},
		{QuestionID: q1.ID, Text: "Square"},
	} {
		if err := s.Answers().Create(ctx, a); err != nil {
			t.Fatalf("create answer: %v", err)
		}
	}

	questions, err := s.Questions().ByQuiz(ctx, quiz.ID)
	if err != nil || len(questions) != 2 {
		t.Fatalf("ByQuiz: %d questions, err=%v", len(questions), err)
	}
	answers, err := s.Answers().ByQuestion(ctx, q1.ID)
	if err != nil || len(answers) != 2 {
		t.Fatalf("ByQuestion: %d answers, err=%v", len(answers), err)
	}

	story := &store.Story{QuizID: quiz.ID, Title: "The Triangle", Author: "anon", Content: "Once upon a time..."}
	if err := s.Stories().Create(ctx, story); err != nil {
		t.Fatalf("create story: %v", err)
	}
	stories, err := s.Stories().ByQuiz(ctx, quiz.ID)
	if err != nil || len(stories) != 1 {
		t.Fatalf("stories ByQuiz: %d, err=%v", len(stories), err)
	}
}

func TestAttemptsAndProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &store.User{Username: "dave", Email: "dave@example.com", PasswordHash: "h", Role: "USER"}
	if err := s.Users().Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	attempt := &store.QuizAttempt{UserID: user.ID, QuizID: 1, Score: 80, Date: time.Now()}
	if err := s.Attempts().Create(ctx, attempt); err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	other := &store.QuizAttempt{UserID: user.ID + 100, QuizID: 1, Score: 50, Date: time.Now()}
	if err := s.Attempts().Create(ctx, other); err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	mine, err := s.Attempts().ByUser(ctx, user.ID)
	if err != nil || len(mine) != 1 {
		t.Fatalf("ByUser: %d attempts, err=%v", len(mine), err)
	}

	if err := s.Progress().Create(ctx, &store.QuizProgress{AttemptID: attempt.ID, QuizID: 1, QuestionID: 7, IsCorrect: true}); err != nil {
		t.Fatalf("create progress: %v", err)
	}
	records, err := s.Progress().ByAttempt(ctx, attempt.ID)
	if err != nil || len(records) != 1 {
		t.Fatalf("ByAttempt: %d records, err=%v", len(records), err)
	}
}
