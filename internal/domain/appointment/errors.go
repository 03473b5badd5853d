package appointment

import "errors"

// Kind classifies a business-rule failure. The boundary layer maps each
// kind to a user-facing status.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindInvalidState   Kind = "invalid_state"
	KindPermission     Kind = "permission_denied"
	KindValidation     Kind = "validation"
	KindNoAvailability Kind = "no_availability"
)

// Error is a typed failure returned by the scheduling core.
type Error struct {
	Kind Kind
	Code string
}

func (e *Error) Error() string {
	if e.Code == "" {
		return string(e.Kind)
	}
	return e.Code
}

// Is matches any error of the same kind when target carries no code, so
// errors.Is(err, ErrNotFound) holds for every not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Code == "" || t.Code == e.Code
}

var (
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrInvalidState   = &Error{Kind: KindInvalidState}
	ErrPermission     = &Error{Kind: KindPermission}
	ErrValidation     = &Error{Kind: KindValidation}
	ErrNoAvailability = &Error{Kind: KindNoAvailability}
)

// Storage-level signals. Stores return these; the core translates them.
var (
	// ErrSlotTaken reports that the store refused an insert because it would
	// overlap a SCHEDULED appointment of the same professional.
	ErrSlotTaken = errors.New("appointment: slot taken")
	// ErrStaleStatus reports that a conditional update found a status other
	// than the expected one.
	ErrStaleStatus = errors.New("appointment: stale status")
)

// NewError builds an error in the same taxonomy for callers outside the
// core, such as request decoding at the boundary.
func NewError(kind Kind, code string) error { return &Error{Kind: kind, Code: code} }

func notFound(code string) error       { return &Error{Kind: KindNotFound, Code: code} }
func invalidState(code string) error   { return &Error{Kind: KindInvalidState, Code: code} }
func permission(code string) error     { return &Error{Kind: KindPermission, Code: code} }
func validation(code string) error     { return &Error{Kind: KindValidation, Code: code} }
func noAvailability(code string) error { return &Error{Kind: KindNoAvailability, Code: code} }

// KindOf returns the kind of a core error, or "" for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// CodeOf returns the code of a core error, or "" for anything else.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return ""
}
