package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "pagemill.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "pagemill.yaml" {
			t.Errorf("expected context file=pagemill.yaml, got %v", file)
		}
	})

	t.Run("Detection through wrapping", func(t *testing.T) {
		base := TemplateError("failed to load layouts").Build()
		wrapped := fmt.Errorf("startup: %w", base)

		if !IsClassified(wrapped) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(wrapped, CategoryTemplate) {
			t.Error("expected template category")
		}
		if !IsFatal(wrapped) {
			t.Error("expected template construction error to be fatal")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected plain errors to map to internal")
		}
		if GetSeverity(errors.New("plain")) != SeverityError {
			t.Error("expected plain errors to map to error severity")
		}
	})

	t.Run("WithContext does not mutate the original", func(t *testing.T) {
		orig := ContentError("decode failed").WithContext("path", "a.md").Build()
		derived := orig.WithContext("stage", "compile")

		if _, ok := orig.Context().Get("stage"); ok {
			t.Error("original context was mutated")
		}
		if v, _ := derived.Context().GetString("path"); v != "a.md" {
			t.Errorf("expected derived context to keep path, got %q", v)
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	t.Run("Wrap keeps the cause", func(t *testing.T) {
		originalErr := errors.New("permission denied")
		err := WrapError(originalErr, CategoryFileSystem, "create output dir").
			WithContext("dir", "build/blog").
			Build()

		if !errors.Is(err, originalErr) {
			t.Error("expected error to wrap original error")
		}
		if err.Severity() != SeverityError {
			t.Errorf("expected default severity error, got %s", err.Severity())
		}
	})

	t.Run("Convenience constructors", func(t *testing.T) {
		tests := []struct {
			name     string
			builder  *ErrorBuilder
			category ErrorCategory
			severity ErrorSeverity
			retry    RetryStrategy
		}{
			{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal, RetryUserAction},
			{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal, RetryUserAction},
			{"TemplateError", TemplateError("test"), CategoryTemplate, SeverityFatal, RetryUserAction},
			{"HighlightError", HighlightError("test"), CategoryHighlight, SeverityFatal, RetryUserAction},
			{"RenderError", RenderError("test"), CategoryTemplate, SeverityWarning, RetryNever},
			{"ContentError", ContentError("test"), CategoryContent, SeverityError, RetryNever},
			{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityError, RetryNever},
			{"BuildError", BuildError("test"), CategoryBuild, SeverityError, RetryNever},
			{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal, RetryNever},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := tt.builder.Build()
				if err.Category() != tt.category {
					t.Errorf("expected category %s, got %s", tt.category, err.Category())
				}
				if err.Severity() != tt.severity {
					t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
				}
				if err.RetryStrategy() != tt.retry {
					t.Errorf("expected retry strategy %s, got %s", tt.retry, err.RetryStrategy())
				}
			})
		}
	})
}

func TestErrorContext(t *testing.T) {
	ctx1 := make(ErrorContext)
	ctx1 = ctx1.Set("key1", "value1")
	ctx1 = ctx1.Set("shared", "original")

	ctx2 := make(ErrorContext)
	ctx2 = ctx2.Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	value1, _ := merged.GetString("key1")
	shared, _ := merged.GetString("shared")
	if value1 != "value1" {
		t.Errorf("expected key1=value1, got %s", value1)
	}
	if shared != "overridden" {
		t.Errorf("expected shared=overridden, got %s", shared)
	}
	if _, ok := merged.Get("missing"); ok {
		t.Error("expected missing key to be absent")
	}
}
