// Package errors provides structured error handling for the play engine.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Catalog errors
	CodeCatalogInvalid   Code = "CATALOG_INVALID"
	CodeLevelNotFound    Code = "LEVEL_NOT_FOUND"
	CodeScenarioNotFound Code = "SCENARIO_NOT_FOUND"
	CodeMessageNotFound  Code = "MESSAGE_NOT_FOUND"

	// Level lifecycle errors
	CodeLevelLocked      Code = "LEVEL_LOCKED"
	CodeLevelNotRunning  Code = "LEVEL_NOT_RUNNING"
	CodeLevelNotResolved Code = "LEVEL_NOT_RESOLVED"
	CodeModeHasNoEmail   Code = "MODE_HAS_NO_EMAIL"

	// Player input errors
	CodeActionInvalid         Code = "ACTION_INVALID"
	CodeClueEmpty             Code = "CLUE_EMPTY"
	CodeMinigameOptionInvalid Code = "MINIGAME_OPTION_INVALID"

	// Host errors
	CodeSessionNotFound Code = "SESSION_NOT_FOUND"
	CodeFilterInvalid   Code = "FILTER_INVALID"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeActionInvalid,
		CodeClueEmpty,
		CodeMinigameOptionInvalid,
		CodeFilterInvalid:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeLevelLocked,
		CodeLevelNotRunning,
		CodeLevelNotResolved,
		CodeModeHasNoEmail,
		CodeCatalogInvalid:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeLevelNotFound,
		CodeScenarioNotFound,
		CodeMessageNotFound,
		CodeSessionNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}

// StateMisuse reports whether the code describes a call made in the wrong
// level phase. These are rejected and logged but never alter state.
func (c Code) StateMisuse() bool {
	switch c {
	case CodeLevelLocked, CodeLevelNotRunning, CodeLevelNotResolved, CodeModeHasNoEmail:
		return true
	default:
		return false
	}
}
