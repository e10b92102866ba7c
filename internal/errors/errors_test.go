package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestBuildError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BuildError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestBuildError_WithContext(t *testing.T) {
	err := MetadataMissing("pages/posts/a.mdx", "title")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}

	if err.Context["path"] != "pages/posts/a.mdx" {
		t.Errorf("Context[path] = %v, want pages/posts/a.mdx", err.Context["path"])
	}

	if err.Context["field"] != "title" {
		t.Errorf("Context[field] = %v, want title", err.Context["field"])
	}
}

func TestBuildError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := WriteFailed("public/rss.xml", cause)

	if !stdErrors.Is(err, cause) {
		t.Error("wrapped cause should be reachable via errors.Is")
	}
}

func TestIsCategory(t *testing.T) {
	scanErr := ScanFailed("pages/posts", fmt.Errorf("unreadable"))
	metaErr := MetadataMissing("a.mdx", "description")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		expected bool
	}{
		{"scan error matches scan category", scanErr, CategoryScan, true},
		{"scan error doesn't match metadata category", scanErr, CategoryMetadata, false},
		{"metadata error matches metadata category", metaErr, CategoryMetadata, true},
		{"wrapped build error matches through fmt wrapping", fmt.Errorf("outer: %w", metaErr), CategoryMetadata, true},
		{"standard error doesn't match any category", standardErr, CategoryScan, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsCategory(test.err, test.category); got != test.expected {
				t.Errorf("IsCategory() = %v, want %v", got, test.expected)
			}
		})
	}
}
