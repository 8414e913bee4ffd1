package cli

import "github.com/linux-china/wukong/pkg/errors"

const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2

	// direnvHook is the .envrc line that loads the directory environment.
	direnvHook = "eval $(wukong direnv)"
)

var errNotInstalled = errors.ErrNotInstalled
