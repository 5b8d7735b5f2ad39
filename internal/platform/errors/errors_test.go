package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	err := New(CodeLevelNotRunning, "decision outside running level")
	wrapped := fmt.Errorf("submit: %w", err)

	if !stderrors.Is(wrapped, New(CodeLevelNotRunning, "")) {
		t.Fatal("expected errors.Is to match by code")
	}
	if stderrors.Is(wrapped, New(CodeLevelLocked, "")) {
		t.Fatal("expected different code not to match")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := stderrors.New("yaml: line 3")
	err := Wrap(CodeCatalogInvalid, "decode catalog", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(fmt.Errorf("x: %w", New(CodeSessionNotFound, "missing"))); got != CodeSessionNotFound {
		t.Fatalf("CodeOf = %s, want %s", got, CodeSessionNotFound)
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf(plain) = %s, want %s", got, CodeUnknown)
	}
	if !HasCode(New(CodeClueEmpty, "blank"), CodeClueEmpty) {
		t.Fatal("expected HasCode to match")
	}
	if HasCode(nil, CodeClueEmpty) {
		t.Fatal("expected nil error not to match")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	tests := []struct {
		code Code
		want codes.Code
	}{
		{CodeActionInvalid, codes.InvalidArgument},
		{CodeFilterInvalid, codes.InvalidArgument},
		{CodeLevelNotRunning, codes.FailedPrecondition},
		{CodeLevelLocked, codes.FailedPrecondition},
		{CodeLevelNotFound, codes.NotFound},
		{CodeSessionNotFound, codes.NotFound},
		{CodeUnknown, codes.Internal},
	}
	for _, tt := range tests {
		if got := tt.code.GRPCCode(); got != tt.want {
			t.Fatalf("%s.GRPCCode() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestStateMisuse(t *testing.T) {
	if !CodeLevelNotRunning.StateMisuse() {
		t.Fatal("expected LEVEL_NOT_RUNNING to be state misuse")
	}
	if CodeLevelNotFound.StateMisuse() {
		t.Fatal("expected LEVEL_NOT_FOUND not to be state misuse")
	}
}

func TestToGRPCStatusAttachesDetails(t *testing.T) {
	err := WithMetadata(CodeLevelNotFound, "level 9 not found", map[string]string{"LevelID": "9"})
	st, ok := status.FromError(err.ToGRPCStatus("en", "That level does not exist."))
	if !ok {
		t.Fatal("expected status error")
	}
	if st.Code() != codes.NotFound {
		t.Fatalf("code = %v, want %v", st.Code(), codes.NotFound)
	}

	var info *errdetails.ErrorInfo
	var localized *errdetails.LocalizedMessage
	for _, d := range st.Details() {
		switch v := d.(type) {
		case *errdetails.ErrorInfo:
			info = v
		case *errdetails.LocalizedMessage:
			localized = v
		}
	}
	if info == nil || info.GetReason() != string(CodeLevelNotFound) || info.GetMetadata()["LevelID"] != "9" {
		t.Fatalf("unexpected error info: %v", info)
	}
	if localized == nil || localized.GetMessage() != "That level does not exist." {
		t.Fatalf("unexpected localized message: %v", localized)
	}
}

func TestToGRPC(t *testing.T) {
	if ToGRPC(nil, "en") != nil {
		t.Fatal("expected nil for nil error")
	}
	st, _ := status.FromError(ToGRPC(fmt.Errorf("start: %w", New(CodeLevelLocked, "locked")), "en"))
	if st.Code() != codes.FailedPrecondition {
		t.Fatalf("code = %v, want %v", st.Code(), codes.FailedPrecondition)
	}
	st, _ = status.FromError(ToGRPC(stderrors.New("boom"), "en"))
	if st.Code() != codes.Internal {
		t.Fatalf("code = %v, want %v", st.Code(), codes.Internal)
	}
	passthrough := status.Error(codes.Canceled, "gone")
	if got := ToGRPC(passthrough, "en"); got != passthrough {
		t.Fatalf("expected status errors to pass through, got %v", got)
	}
}
