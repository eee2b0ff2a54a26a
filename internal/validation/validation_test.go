package validation_test

import (
	"strings"
	"testing"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/validation"
)

type registerInput struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func TestValidate_Struct(t *testing.T) {
	tests := []struct {
		name    string
		input   registerInput
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "valid",
			input:  registerInput{Username: "alice_1", Email: "alice@example.com", Password: "abc123"},
			wantOK: true,
		},
		{
			name:    "short username",
			input:   registerInput{Username: "ab", Email: "a@b.co", Password: "abc123"},
			wantMsg: "username",
		},
		{
			name:    "bad email",
			input:   registerInput{Username: "alice", Email: "not-an-email", Password: "abc123"},
			wantMsg: "email",
		},
		{
			name:    "weak password",
			input:   registerInput{Username: "alice", Email: "a@b.co", Password: "abcdef"},
			wantMsg: "password",
		},
		{
			name:    "missing fields",
			input:   registerInput{},
			wantMsg: "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.input)
			if tt.wantOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			appErr, ok := apperr.AsAppError(err)
			if !ok || appErr.Code != apperr.ErrCodeInvalidInput {
				t.Fatalf("expected invalid-input AppError, got %v", err)
			}
			if !strings.Contains(appErr.Message, tt.wantMsg) {
				t.Errorf("message %q does not mention %q", appErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"abc", "user_1", "ABCdef123", strings.Repeat("a", 20)}
	invalid := []string{"", "ab", strings.Repeat("a", 21), "has space", "dash-y", "émile"}

	for _, s := range valid {
		if !validation.IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if validation.IsValidUsername(s) {
			t.Errorf("IsValidUsername(%q) = true, want false", s)
		}
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"abc123", true},
		{"a1b2c3d4", true},
		{"abc12", false},    // too short
		{"abcdef", false},   // no digit
		{"123456", false},   // no letter
		{"", false},
	}
	for _, tt := range tests {
		if got := validation.IsStrongPassword(tt.password); got != tt.want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := validation.SanitizeString("  hello\x00world\t "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
}

func TestIsSafeString(t *testing.T) {
	safe := []string{"hello world", "What shape has 3 sides?", "quiz_42"}
	unsafe := []string{"x'; DROP TABLE users", "<script>alert(1)</script>", "1 UNION SELECT *", "a--b"}

	for _, s := range safe {
		if !validation.IsSafeString(s) {
			t.Errorf("IsSafeString(%q) = false, want true", s)
		}
	}
	for _, s := range unsafe {
		if validation.IsSafeString(s) {
			t.Errorf("IsSafeString(%q) = true, want false", s)
		}
	}
}
