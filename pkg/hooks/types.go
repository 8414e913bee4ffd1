//go:generate mockgen -destination=./mocks/hooks.go . HookManager
package hooks

import "context"

// HookType represents the type of hook.
type HookType string

// Supported hook types. A script for type T lives in <hooks dir>/T.tengo.
const (
	PostInstall   HookType = "post-install"
	PreUninstall  HookType = "pre-uninstall"
	PostUninstall HookType = "post-uninstall"
	PostDefault   HookType = "post-default"
)

// Types lists every supported hook type.
func Types() []HookType {
	return []HookType{PostInstall, PreUninstall, PostUninstall, PostDefault}
}

// Valid reports whether t is a supported hook type.
func (t HookType) Valid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// Hook represents a hook script with its type and content.
type Hook struct {
	Type    HookType
	Content string
}

// HookContext contains information passed to hooks.
type HookContext struct {
	Candidate     string
	Version       string
	CandidateHome string
	Vars          map[string]interface{}
}

// HookManager defines the interface for managing hooks.
type HookManager interface {
	// Execute runs the hook of the given type, if one is registered.
	Execute(ctx context.Context, hookType HookType, hookCtx HookContext) error

	// AddHook adds or replaces a hook.
	AddHook(hook Hook) error

	// RemoveHook removes the hook of the given type.
	RemoveHook(hookType HookType) error

	// HasHook checks if a hook of the given type exists.
	HasHook(hookType HookType) bool
}
