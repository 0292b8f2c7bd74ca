package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWithMessage_MatchesSentinel(t *testing.T) {
	err := WithMessage(ErrorValidation, "Title is required.")

	if !errors.Is(err, ErrorValidation) {
		t.Fatalf("expected errors.Is against ErrorValidation, got %v", err)
	}
	if err.Error() != "Title is required." {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWithMessage_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", WithMessage(ErrorNotFound, "Task not found"))

	if !errors.Is(err, ErrorNotFound) {
		t.Fatalf("wrapped error lost its sentinel: %v", err)
	}
	if got := UserMessage(err); got != "Task not found" {
		t.Fatalf("UserMessage = %q, want %q", got, "Task not found")
	}
}

func TestUserMessage_PlainErrorHasNone(t *testing.T) {
	if got := UserMessage(errors.New("pq: connection refused")); got != "" {
		t.Fatalf("plain error should carry no user message, got %q", got)
	}
	if got := UserMessage(ErrorInternal); got != "" {
		t.Fatalf("bare sentinel should carry no user message, got %q", got)
	}
}
