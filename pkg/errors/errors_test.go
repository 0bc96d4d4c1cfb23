package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/scaffold/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "template not found",
			wantStr: "[NOT_FOUND] template not found",
		},
		{
			name:    "config_invalid_error",
			code:    errors.ErrConfigValid,
			message: "choice variable has no choices",
			wantStr: "[CONFIG_INVALID] choice variable has no choices",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}
			if err.Details == nil {
				t.Error("New() details should be initialized")
			}
			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrTemplateExists, "template '%s' already exists", "api")
	if err.Message != "template 'api' already exists" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("permission denied")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileWrite, "failed to write file")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[FILE_WRITE] failed to write file: permission denied"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrFileWrite, "write failed").
		WithDetail("path", "/out/main.py").
		WithDetail("op", "write")

	if err.Details["path"] != "/out/main.py" {
		t.Errorf("WithDetail() path = %v", err.Details["path"])
	}
	if got := errors.GetErrorDetails(err); got["op"] != "write" {
		t.Errorf("GetErrorDetails() op = %v", got["op"])
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrRemote, "clone failed")
	err2 := errors.New(errors.ErrRemote, "git missing")
	err3 := errors.New(errors.ErrInternal, "boom")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotFound, "x"), errors.ErrNotFound, true},
		{"different_code", errors.New(errors.ErrNotFound, "x"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileRead, "read"), errors.ErrFileRead, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorFamilies(t *testing.T) {
	if !errors.IsNotFound(errors.New(errors.ErrTemplateNotFound, "x")) {
		t.Error("template not found should be in the not-found family")
	}
	if !errors.IsNotFound(errors.New(errors.ErrFileNotFound, "x")) {
		t.Error("file not found should be in the not-found family")
	}
	if errors.IsNotFound(errors.New(errors.ErrRemote, "x")) {
		t.Error("remote failure is not a not-found error")
	}
	if !errors.IsAlreadyExists(errors.New(errors.ErrTemplateExists, "x")) {
		t.Error("template exists should be in the already-exists family")
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileRead, "cannot read manifest")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load template")

	if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
		t.Error("top level should have ErrConfigLoad code")
	}

	var inner *errors.ScaffoldError
	if stderrors.As(configErr.Unwrap(), &inner) && inner.Code != errors.ErrFileRead {
		t.Error("middle error should have ErrFileRead code")
	}

	if !stderrors.Is(configErr, rootCause) {
		t.Error("should find root cause with errors.Is")
	}
}

func TestGetMessage(t *testing.T) {
	if got := errors.GetMessage(errors.New(errors.ErrRemote, "clone failed")); got != "clone failed" {
		t.Errorf("GetMessage() = %q", got)
	}
	if got := errors.GetMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("GetMessage() = %q", got)
	}
	if got := errors.GetMessage(nil); got != "" {
		t.Errorf("GetMessage(nil) = %q", got)
	}
}
