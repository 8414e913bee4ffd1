package hooks

import (
	"fmt"

	"github.com/linux-china/wukong/pkg/errors"
)

// Common hook errors.
var (
	// ErrHookTypeEmpty is returned when a hook type is empty.
	ErrHookTypeEmpty = fmt.Errorf("hook type cannot be empty")

	// ErrHookExecution is returned when there's an error executing a hook.
	ErrHookExecution = fmt.Errorf("error executing hook")

	// ErrHookScript is returned when a hook script sets its err variable.
	ErrHookScript = fmt.Errorf("hook script error")
)

// ErrUnsupportedHookEvent is returned when an unknown hook type is used.
func ErrUnsupportedHookEvent(event string) error {
	return errors.Wrapf(ErrHookExecution, "unsupported hook event: %s", event)
}
