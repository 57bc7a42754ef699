package match

import "errors"

// ValidationError is a recoverable rule rejection: the action is refused,
// state is left unchanged, and the caller surfaces the reason as a
// warning. Compare with errors.Is against the sentinels below.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// StateError is a recoverable precondition failure that is not a rule of
// the game itself (nothing to undo, clock not startable). Also a no-op.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string { return e.Reason }

// Sentinel errors returned by engine operations. They are pointer values,
// so errors.Is works by identity.
var (
	ErrUnknownEntity          = &ValidationError{"unknown entity"}
	ErrAlreadyDisqualified    = &ValidationError{"entity is already disqualified"}
	ErrAlreadyBooked          = &ValidationError{"entity already has a yellow card"}
	ErrCollectiveLimitReached = &ValidationError{"collective sanction limit reached"}
	ErrOfficialNotFieldable   = &ValidationError{"officials cannot enter the field"}
	ErrSuspensionActive       = &ValidationError{"entity is serving a 2' suspension"}
	ErrBenchBlocked           = &ValidationError{"entity is blocked on the bench"}
	ErrCapacityExceeded       = &ValidationError{"field capacity exceeded"}
	ErrZoneNotAllowed         = &ValidationError{"zone not allowed for this shot type"}

	ErrIneligibleStart  = &StateError{"first half needs exactly 7 players on the field"}
	ErrNothingToUndo    = &StateError{"nothing to undo"}
	ErrNoPendingRequest = &StateError{"no pending forced substitution"}
)

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsState reports whether err is a StateError.
func IsState(err error) bool {
	var s *StateError
	return errors.As(err, &s)
}
