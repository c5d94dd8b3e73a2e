package domain

// ResultCode classifies the outcome of a session manager action.
type ResultCode string

const (
	CodeOK                 ResultCode = "OK"
	CodeInvalidInput       ResultCode = "InvalidInput"
	CodeAlreadyExists      ResultCode = "AlreadyExists"
	CodeDuplicateEmail     ResultCode = "DuplicateEmail"
	CodeNotFound           ResultCode = "NotFound"
	CodePersistenceFailure ResultCode = "PersistenceFailure"
	CodeAuthFailure        ResultCode = "AuthFailure"
)

// ActionResult is the plain value returned to callers of sign-up and sign-in.
type ActionResult struct {
	Success bool       `json:"success"`
	Code    ResultCode `json:"code"`
	Message string     `json:"message"`
}

// Succeeded builds a successful result.
func Succeeded(message string) ActionResult {
	return ActionResult{Success: true, Code: CodeOK, Message: message}
}

// Failed builds a failed result.
func Failed(code ResultCode, message string) ActionResult {
	return ActionResult{Success: false, Code: code, Message: message}
}

// SessionOutcome reports whether sign-in managed to set a session cookie.
type SessionOutcome string

const (
	SessionNotAttempted   SessionOutcome = "not_attempted"
	SessionEstablished    SessionOutcome = "established"
	SessionNotEstablished SessionOutcome = "not_established"
)

// AuthenticateResult is the sign-in result. Session is only meaningful when Success is true.
type AuthenticateResult struct {
	ActionResult
	Session SessionOutcome `json:"session"`
}
