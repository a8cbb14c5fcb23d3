// Package apperrors tests verify the custom error types, their Error()
// messages, Is() matching semantics, constructor helpers, and compatibility
// with errors.Is() including through fmt.Errorf wrapping.
package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

// ---------------------------------------------------------------------------
// ErrNotFound
// ---------------------------------------------------------------------------

func TestErrNotFound_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      *ErrNotFound
		expected string
	}{
		{
			name:     "with string ID",
			err:      &ErrNotFound{Resource: "anime", ID: "abc"},
			expected: "anime with ID abc not found",
		},
		{
			name:     "with int ID",
			err:      &ErrNotFound{Resource: "episode", ID: 42},
			expected: "episode with ID 42 not found",
		},
		{
			name:     "with nil ID",
			err:      &ErrNotFound{Resource: "anime", ID: nil},
			expected: "anime not found",
		},
		{
			name:     "with zero int ID",
			err:      &ErrNotFound{Resource: "item", ID: 0},
			expected: "item with ID 0 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrNotFound_Is(t *testing.T) {
	t.Parallel()
	err := &ErrNotFound{Resource: "anime", ID: 1}

	t.Run("matches another ErrNotFound", func(t *testing.T) {
		target := &ErrNotFound{}
		if !errors.Is(err, target) {
			t.Error("expected errors.Is to match *ErrNotFound")
		}
	})

	t.Run("matches ErrNotFound with different fields", func(t *testing.T) {
		target := &ErrNotFound{Resource: "other", ID: 99}
		if !errors.Is(err, target) {
			t.Error("expected errors.Is to match *ErrNotFound regardless of field values")
		}
	})

	t.Run("does not match ErrUpstreamStatus", func(t *testing.T) {
		target := &ErrUpstreamStatus{}
		if errors.Is(err, target) {
			t.Error("expected errors.Is not to match *ErrUpstreamStatus")
		}
	})

	t.Run("does not match plain error", func(t *testing.T) {
		target := errors.New("some error")
		if errors.Is(err, target) {
			t.Error("expected errors.Is not to match a plain error")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", err)
		if !errors.Is(wrapped, &ErrNotFound{}) {
			t.Error("expected errors.Is to match *ErrNotFound through wrapping")
		}
	})

	t.Run("matches through double wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("mid: %w", fmt.Errorf("inner: %w", err))
		if !errors.Is(wrapped, &ErrNotFound{}) {
			t.Error("expected errors.Is to match *ErrNotFound through double wrapping")
		}
	})
}

func TestNewNotFoundError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		resource string
		id       interface{}
		wantMsg  string
	}{
		{
			name:     "string resource and int ID",
			resource: "anime",
			id:       7,
			wantMsg:  "anime with ID 7 not found",
		},
		{
			name:     "nil ID",
			resource: "episode",
			id:       nil,
			wantMsg:  "episode not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewNotFoundError(tt.resource, tt.id)
			if err.Resource != tt.resource {
				t.Errorf("Resource = %q, want %q", err.Resource, tt.resource)
			}
			if err.ID != tt.id {
				t.Errorf("ID = %v, want %v", err.ID, tt.id)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
			if !errors.Is(err, &ErrNotFound{}) {
				t.Error("expected errors.Is to match *ErrNotFound")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ErrUpstreamStatus
// ---------------------------------------------------------------------------

func TestErrUpstreamStatus_Error(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		operation string
		status    int
		expected  string
	}{
		{
			name:      "typical values",
			operation: "top_anime",
			status:    503,
			expected:  "top_anime failed with upstream status 503",
		},
		{
			name:      "rate limited",
			operation: "episodes",
			status:    429,
			expected:  "episodes failed with upstream status 429",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := NewUpstreamStatusError(tt.operation, tt.status)
			if got := err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrUpstreamStatus_Is(t *testing.T) {
	t.Parallel()
	err := NewUpstreamStatusError("anime_by_id", 500)

	t.Run("matches another ErrUpstreamStatus", func(t *testing.T) {
		if !errors.Is(err, &ErrUpstreamStatus{}) {
			t.Error("expected errors.Is to match *ErrUpstreamStatus")
		}
	})

	t.Run("matches with different fields", func(t *testing.T) {
		target := &ErrUpstreamStatus{Operation: "other", StatusCode: 404}
		if !errors.Is(err, target) {
			t.Error("expected errors.Is to match *ErrUpstreamStatus regardless of field values")
		}
	})

	t.Run("does not match ErrNotFound", func(t *testing.T) {
		if errors.Is(err, &ErrNotFound{}) {
			t.Error("expected errors.Is not to match *ErrNotFound")
		}
	})

	t.Run("matches through fmt.Errorf wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("fetch failed: %w", err)
		if !errors.Is(wrapped, &ErrUpstreamStatus{}) {
			t.Error("expected errors.Is to match *ErrUpstreamStatus through wrapping")
		}
	})
}

// ---------------------------------------------------------------------------
// ErrUnsupportedServer
// ---------------------------------------------------------------------------

func TestErrUnsupportedServer(t *testing.T) {
	t.Parallel()
	err := NewUnsupportedServerError("NetMirror")
	if err.Name != "NetMirror" {
		t.Errorf("Name = %q, want NetMirror", err.Name)
	}

	expected := `unsupported server type "NetMirror"`
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}

	if !errors.Is(err, &ErrUnsupportedServer{}) {
		t.Error("expected errors.Is to match *ErrUnsupportedServer")
	}
	if errors.Is(err, &ErrNotFound{}) {
		t.Error("expected errors.Is not to match *ErrNotFound")
	}

	wrapped := fmt.Errorf("resolve: %w", err)
	if !errors.Is(wrapped, &ErrUnsupportedServer{}) {
		t.Error("expected errors.Is to match *ErrUnsupportedServer through wrapping")
	}
}

// ---------------------------------------------------------------------------
// Cross-type isolation: no error type matches any other type
// ---------------------------------------------------------------------------

func TestErrorTypes_CrossTypeIsolation(t *testing.T) {
	t.Parallel()
	errs := []error{
		&ErrNotFound{Resource: "x", ID: 1},
		&ErrUpstreamStatus{Operation: "x", StatusCode: 500},
		&ErrUnsupportedServer{Name: "x"},
	}

	for i, a := range errs {
		for j, b := range errs {
			if i == j {
				continue
			}
			if errors.Is(a, b) {
				t.Errorf("expected errors.Is(%T, %T) to be false", a, b)
			}
		}
	}
}
