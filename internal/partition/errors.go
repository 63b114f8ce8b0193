package partition

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSelection is returned when a merge is attempted without
	// exactly two selected lists. The manager keeps a user-facing message.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrPrecondition marks a call that is not valid for the current state.
	// It indicates the caller is out of sync with the manager.
	ErrPrecondition = errors.New("precondition violation")
	// ErrDuplicateItem is returned when loaded data repeats an item identity.
	ErrDuplicateItem = errors.New("duplicate item")
	// ErrConservation is returned by Audit when items were lost or duplicated.
	ErrConservation = errors.New("conservation violated")
)

// SelectionMessage is shown when a merge is started with the wrong number of
// selected lists.
const SelectionMessage = "You should select exactly 2 lists to create a new list"

func preconditionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}
