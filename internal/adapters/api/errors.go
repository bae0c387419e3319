package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors forming the failure taxonomy every component branches on.
// Use errors.Is against these; the concrete *Error carries the detail.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrNotPermitted    = errors.New("not permitted")
	ErrConflict        = errors.New("request conflicts with current state")
	ErrInvalid         = errors.New("request was rejected")
	ErrUnreachable     = errors.New("cannot reach server")
	ErrServer          = errors.New("server error")
)

// Conflict causes the backend distinguishes in its response text.
const (
	CauseAlreadyJoined = "already_joined"
	CauseEventFull     = "event_full"
	CauseDuplicateUser = "duplicate_user"
)

// Error is a classified failure from the remote API.
type Error struct {
	Status int    // HTTP status, 0 for transport failures
	Body   string // raw response body, for logs only
	Cause  string // distinguished conflict cause, empty when unknown
	kind   error  // one of the sentinel errors above
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.kind.Error()
	}
	return fmt.Sprintf("%v (status %d)", e.kind, e.Status)
}

func (e *Error) Unwrap() error {
	return e.kind
}

// UserMessage returns server-provided text safe to show verbatim, or the
// empty string when the body looks like a technical dump and a generic
// message must be substituted instead.
func (e *Error) UserMessage() string {
	body := strings.TrimSpace(e.Body)
	if body == "" || looksTechnical(body) {
		return ""
	}
	return body
}

// looksTechnical detects payloads that resemble JSON error objects or stack
// traces rather than human-readable sentences.
func looksTechnical(body string) bool {
	if len(body) > 300 {
		return true
	}
	for _, marker := range []string{"{", "timestamp", "\"path\"", "Exception", "stacktrace", "<html"} {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

// NewError classifies a status and body pair the way the client would.
// Exposed for tests and stub backends.
func NewError(status int, body string) error {
	return classify(status, body)
}

// classify maps a response status and body onto the taxonomy.
func classify(status int, body string) error {
	e := &Error{Status: status, Body: body}
	switch {
	case status == 401:
		e.kind = ErrUnauthenticated
	case status == 403:
		e.kind = ErrNotPermitted
	case status == 409:
		e.kind = ErrConflict
		e.Cause = conflictCause(body)
	case status == 400:
		// The backend answers some state conflicts with 400 text bodies.
		if cause := conflictCause(body); cause != "" {
			e.kind = ErrConflict
			e.Cause = cause
		} else {
			e.kind = ErrInvalid
		}
	case status >= 500:
		e.kind = ErrServer
	default:
		e.kind = ErrInvalid
	}
	return e
}

// conflictCause sniffs the response text for the causes the backend spells
// out. Returns empty when none is recognized.
func conflictCause(body string) string {
	lower := strings.ToLower(body)
	switch {
	case strings.Contains(lower, "already joined"), strings.Contains(lower, "already a participant"):
		return CauseAlreadyJoined
	case strings.Contains(lower, "full"), strings.Contains(lower, "capacity"):
		return CauseEventFull
	case strings.Contains(lower, "username"), strings.Contains(lower, "email"):
		return CauseDuplicateUser
	default:
		return ""
	}
}

// ConflictCause extracts the distinguished cause from a classified error,
// empty when the error is not a conflict or the cause is unknown.
func ConflictCause(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Cause
	}
	return ""
}

// SafeUserMessage extracts displayable server text from a classified error.
// Empty means the caller must substitute its own generic message.
func SafeUserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return ""
}
