package hooks

import "context"

// Manager is the HookManager backed by Tengo scripts.
type Manager struct {
	executor *TengoExecutor
}

// NewHookManager creates an empty Manager.
func NewHookManager() *Manager {
	return &Manager{executor: NewTengoExecutor()}
}

// Execute implements HookManager.
func (m *Manager) Execute(ctx context.Context, hookType HookType, hookCtx HookContext) error {
	return m.executor.Execute(ctx, hookType, hookCtx)
}

// AddHook implements HookManager.
func (m *Manager) AddHook(hook Hook) error {
	if hook.Type == "" {
		return ErrHookTypeEmpty
	}
	if !hook.Type.Valid() {
		return ErrUnsupportedHookEvent(string(hook.Type))
	}
	m.executor.AddScript(hook.Type, hook.Content)
	return nil
}

// RemoveHook implements HookManager.
func (m *Manager) RemoveHook(hookType HookType) error {
	m.executor.RemoveScript(hookType)
	return nil
}

// HasHook implements HookManager.
func (m *Manager) HasHook(hookType HookType) bool {
	return m.executor.HasScript(hookType)
}
