package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	t.Parallel()

	err := New(CodeValidation, "bad input")
	if err.Code() != CodeValidation {
		t.Fatalf("code = %v", err.Code())
	}
	if err.Message() != "bad input" {
		t.Fatalf("message = %q", err.Message())
	}
	if err.Error() != "VALIDATION_ERROR: bad input" {
		t.Fatalf("error = %q", err.Error())
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := stdErrors.New("connection reset")
	err := Wrap(CodeTransport, cause, "execute request")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped cause must be reachable via errors.Is")
	}
	if Wrap(CodeTransport, nil, "no cause").Unwrap() != nil {
		t.Fatal("nil cause must not produce an unwrap target")
	}
}

func TestAsFindsNestedError(t *testing.T) {
	t.Parallel()

	inner := New(CodeSessionExpired, "gone")
	wrapped := fmt.Errorf("opening session: %w", inner)

	typed := As(wrapped)
	if typed == nil || typed.Code() != CodeSessionExpired {
		t.Fatalf("As = %v", typed)
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatal("untyped error must yield nil")
	}
	if As(nil) != nil {
		t.Fatal("nil error must yield nil")
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	if CodeOf(New(CodeNotFound, "missing")) != CodeNotFound {
		t.Fatal("typed error code")
	}
	if CodeOf(stdErrors.New("plain")) != CodeInternal {
		t.Fatal("untyped errors default to internal")
	}
}

func TestMetadataFor(t *testing.T) {
	t.Parallel()

	meta := MetadataFor(CodeSessionExpired)
	if meta.HTTPStatus != http.StatusGone {
		t.Fatalf("status = %d", meta.HTTPStatus)
	}
	if meta.Retryable {
		t.Fatal("expired session is not retryable")
	}
	if !MetadataFor(CodeTransport).Retryable {
		t.Fatal("transport errors are retryable")
	}
	if MetadataFor(Code("nope")).HTTPStatus != http.StatusInternalServerError {
		t.Fatal("unknown codes fall back to internal")
	}
}

func TestWithDetails(t *testing.T) {
	t.Parallel()

	err := New(CodeValidation, "card validation failed").
		WithDetails(map[string]string{"cvv": "must be 3 or 4 digits"})
	details, ok := err.Details().(map[string]string)
	if !ok || details["cvv"] == "" {
		t.Fatalf("details = %v", err.Details())
	}
}
