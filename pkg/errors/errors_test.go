package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeConfiguration, status: http.StatusUnprocessableEntity, publicMsg: "misconfigured pricing policy", detailsOK: true},
		{code: CodeInsufficient, status: http.StatusPaymentRequired, publicMsg: "pour exceeds authorized volume", detailsOK: true},
		{code: CodeOutOfOrder, status: http.StatusConflict, publicMsg: "event precedes recorded state", detailsOK: true},
		{code: CodePersistence, status: http.StatusServiceUnavailable, publicMsg: "storage unavailable", retryable: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing user id")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing user id" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "user_id"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodePersistence, cause, "saving drink")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodePersistence {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeOutOfOrder, "stale pour")
	if got := As(err); got == nil || got.Code() != CodeOutOfOrder {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeInsufficient, "grants exhausted")
	if !IsCode(err, CodeInsufficient) {
		t.Fatalf("expected IsCode match")
	}
	if IsCode(err, CodeValidation) {
		t.Fatalf("unexpected IsCode match")
	}
	if IsCode(nil, CodeInternal) {
		t.Fatalf("nil error should not match")
	}
}

func TestDumpFields(t *testing.T) {
	err := Wrap(CodePersistence, stdErrors.New("connection refused"), "saving drink")
	dump := Dump(err)

	if dump.TopMessage == "" {
		t.Fatal("expected a top message")
	}
	if dump.Code != CodePersistence {
		t.Fatalf("expected persistence code, got %q", dump.Code)
	}
	if len(dump.Chain) < 2 {
		t.Fatalf("expected unwrapped chain, got %v", dump.Chain)
	}

	fields := dump.Fields()
	if fields["error_code"] != CodePersistence {
		t.Fatalf("expected code in fields, got %v", fields["error_code"])
	}
	if fields["error"] != dump.TopMessage {
		t.Fatalf("expected top message in fields, got %v", fields["error"])
	}

	if got := Dump(nil); got.TopMessage != "" || got.Code != "" {
		t.Fatalf("Dump(nil) should be empty, got %+v", got)
	}
}
