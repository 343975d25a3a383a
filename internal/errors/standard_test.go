package errors

import (
	"strings"
	"testing"
)

func TestStandardErrorFormatsCategoryCodeAndCaller(t *testing.T) {
	err := New(CategorySystem, "SOME_CODE", "something broke", nil)
	got := err.Error()
	if !strings.Contains(got, "SYSTEM") || !strings.Contains(got, "SOME_CODE") || !strings.Contains(got, "something broke") {
		t.Fatalf("unexpected error text: %q", got)
	}
	if !strings.Contains(got, "TestStandardErrorFormatsCategoryCodeAndCaller") {
		t.Fatalf("expected caller name in error text, got %q", got)
	}
}

func TestInvalidModeMatchesOriginalWording(t *testing.T) {
	err := InvalidMode("--bogus")
	want := "Invalid option: --bogus. Use --strings or --urls."
	if !strings.Contains(err.Error(), want) {
		t.Fatalf("got %q, want it to contain %q", err.Error(), want)
	}
	if err.Category != CategoryValidation {
		t.Fatalf("got category %v, want CategoryValidation", err.Category)
	}
}

func TestExecutableNotFoundCarriesThePath(t *testing.T) {
	err := ExecutableNotFound("/no/such/file")
	if err.Context["path"] != "/no/such/file" {
		t.Fatalf("expected the path to be recorded in Context, got %v", err.Context)
	}
}
