package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidInput, "empty data values")
	want := "INVALID_INPUT: empty data values"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch render service")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
	if got := err.Error(); got != "NETWORK_ERROR: fetch render service: connection refused" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeRenderFailed, "renderer rejected spec")

	if !Is(err, ErrCodeRenderFailed) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeInvalidInput) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeRenderFailed) {
		t.Error("Is should not match plain errors")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeChartNotFound, "chart %s", "abc")
	outer := fmt.Errorf("store lookup: %w", inner)

	if !Is(outer, ErrCodeChartNotFound) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
	if GetCode(outer) != ErrCodeChartNotFound {
		t.Errorf("GetCode = %q, want CHART_NOT_FOUND", GetCode(outer))
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "invalid format: webp")
	if got := UserMessage(err); got != "invalid format: webp" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}

func TestGetCodeNonStructured(t *testing.T) {
	if code := GetCode(stderrors.New("plain")); code != "" {
		t.Errorf("GetCode for plain error = %q, want empty", code)
	}
}
