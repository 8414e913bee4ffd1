//go:generate mockgen -destination=./mocks/orchestrator.go . CandidateStore,VersionSource

package orchestrator

import (
	"context"

	"github.com/linux-china/wukong/pkg/archive"
	"github.com/linux-china/wukong/pkg/hooks"
	"github.com/linux-china/wukong/pkg/platform"
	"github.com/linux-china/wukong/pkg/resolver"
	"github.com/linux-china/wukong/pkg/store"
)

// CandidateStore is the subset of the store used by the orchestrator.
type CandidateStore interface {
	Exists(c store.Candidate) bool
	Home(c store.Candidate) string
	Install(ctx context.Context, c store.Candidate, desc archive.Descriptor) (*store.InstallResult, error)
	Uninstall(c store.Candidate) error
	SetCurrent(c store.Candidate) error
}

// VersionSource looks up the recommended version of a candidate.
type VersionSource interface {
	DefaultVersion(ctx context.Context, candidate string) (string, error)
}

// Orchestrator ties resolution, the candidate store and hook scripts together.
type Orchestrator struct {
	Resolver resolver.Resolver
	Versions VersionSource
	Store    CandidateStore
	Scripts  hooks.HookManager
	Platform platform.Platform
	Hooks    Hooks // Hooks for progress and event notifications
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|downloading|installing|hooks|default|uninstalling|done
	ID    string // candidate and version
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// InstallRequest describes one install.
type InstallRequest struct {
	Candidate   string
	Version     string
	MakeDefault bool
	DryRun      bool
}

// UpgradeResult reports what Upgrade did.
type UpgradeResult struct {
	Candidate string
	Version   string
	Installed bool
}
