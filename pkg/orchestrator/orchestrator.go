// Package orchestrator runs the install, uninstall and upgrade pipelines on
// top of the resolver, the candidate store and hook scripts.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/archive"
	"github.com/linux-china/wukong/pkg/errors"
	"github.com/linux-china/wukong/pkg/hooks"
	"github.com/linux-china/wukong/pkg/platform"
	"github.com/linux-china/wukong/pkg/resolver"
	"github.com/linux-china/wukong/pkg/store"
)

func emit(h Hooks, e Event) {
	if h.OnEvent != nil {
		h.OnEvent(e)
	}
}

func (o *Orchestrator) runScript(ctx context.Context, hookType hooks.HookType, c store.Candidate) error {
	if o.Scripts == nil || !o.Scripts.HasHook(hookType) {
		return nil
	}
	emit(o.Hooks, Event{Phase: "hooks", ID: c.String(), Msg: string(hookType)})
	return o.Scripts.Execute(ctx, hookType, hooks.HookContext{
		Candidate:     c.Name,
		Version:       c.Version,
		CandidateHome: o.Store.Home(c),
	})
}

// Install resolves, downloads and unpacks one candidate version, runs the
// post-install hook and optionally makes it the default.
func (o *Orchestrator) Install(ctx context.Context, req InstallRequest) (*store.InstallResult, error) {
	if o.Store == nil {
		return nil, fmt.Errorf("candidate store is not configured")
	}
	if req.Candidate == "" || req.Version == "" {
		return nil, fmt.Errorf("candidate and version are required: %w", errors.ErrInvalidPath)
	}
	c := store.Candidate{Name: req.Candidate, Version: req.Version}

	if o.Store.Exists(c) {
		emit(o.Hooks, Event{Phase: "done", ID: c.String(), Msg: "already installed"})
		if req.MakeDefault && !req.DryRun {
			if err := o.Default(ctx, c); err != nil {
				return nil, err
			}
		}
		return &store.InstallResult{Home: o.Store.Home(c), AlreadyInstalled: true}, nil
	}

	if !platform.Supported(o.Platform) {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, fmt.Errorf("%s: %w", o.Platform, errors.ErrUnsupportedPlatform))
	}
	if o.Resolver == nil {
		return nil, fmt.Errorf("resolver is not configured")
	}

	emit(o.Hooks, Event{Phase: "resolving", ID: c.String(), Msg: o.Platform.String()})
	res, err := o.Resolver.Resolve(ctx, resolver.Request{Candidate: c.Name, Version: c.Version, Platform: o.Platform})
	if err != nil {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, err)
	}
	desc, err := archive.NewDescriptor(res.URL, res.Filename, c.Name, o.Platform)
	if err != nil {
		return nil, errors.NewCandidateError("install", c.Name, c.Version, err)
	}
	logger.Debug("Resolved archive", logger.Fields{"url": desc.URL, "format": desc.Format.String(), "policy": desc.Policy.String()})

	if req.DryRun {
		emit(o.Hooks, Event{Phase: "downloading", ID: c.String(), Msg: desc.URL})
		emit(o.Hooks, Event{Phase: "done", ID: c.String(), Msg: "dry-run"})
		return &store.InstallResult{Home: o.Store.Home(c)}, nil
	}

	emit(o.Hooks, Event{Phase: "downloading", ID: c.String(), Msg: desc.URL})
	result, err := o.Store.Install(ctx, c, desc)
	if err != nil {
		emit(o.Hooks, Event{Phase: "error", ID: c.String(), Msg: err.Error()})
		return nil, err
	}

	if !result.AlreadyInstalled {
		if err := o.runScript(ctx, hooks.PostInstall, c); err != nil {
			return result, errors.NewCandidateError("install", c.Name, c.Version, err)
		}
	}
	if req.MakeDefault {
		if err := o.Default(ctx, c); err != nil {
			return result, err
		}
	}

	emit(o.Hooks, Event{Phase: "done", ID: c.String(), Msg: result.Home})
	return result, nil
}

// Default makes c the current version and runs the post-default hook.
func (o *Orchestrator) Default(ctx context.Context, c store.Candidate) error {
	emit(o.Hooks, Event{Phase: "default", ID: c.String()})
	if err := o.Store.SetCurrent(c); err != nil {
		return err
	}
	if err := o.runScript(ctx, hooks.PostDefault, c); err != nil {
		return errors.NewCandidateError("default", c.Name, c.Version, err)
	}
	return nil
}

// Uninstall runs the pre-uninstall hook, removes c and runs the
// post-uninstall hook. A failing pre-uninstall hook aborts the removal.
func (o *Orchestrator) Uninstall(ctx context.Context, c store.Candidate) error {
	if o.Store == nil {
		return fmt.Errorf("candidate store is not configured")
	}
	if !o.Store.Exists(c) {
		return o.Store.Uninstall(c)
	}
	if err := o.runScript(ctx, hooks.PreUninstall, c); err != nil {
		return errors.NewCandidateError("uninstall", c.Name, c.Version, err)
	}

	emit(o.Hooks, Event{Phase: "uninstalling", ID: c.String()})
	if err := o.Store.Uninstall(c); err != nil {
		return err
	}
	if err := o.runScript(ctx, hooks.PostUninstall, c); err != nil {
		return errors.NewCandidateError("uninstall", c.Name, c.Version, err)
	}
	emit(o.Hooks, Event{Phase: "done", ID: c.String(), Msg: "uninstalled"})
	return nil
}

// Upgrade installs the recommended version of name when it is missing.
func (o *Orchestrator) Upgrade(ctx context.Context, name string, makeDefault bool) (*UpgradeResult, error) {
	if o.Versions == nil {
		return nil, fmt.Errorf("version source is not configured")
	}
	version, err := o.Versions.DefaultVersion(ctx, name)
	if err != nil {
		return nil, errors.NewCandidateError("upgrade", name, "", err)
	}
	c := store.Candidate{Name: name, Version: version}
	if o.Store.Exists(c) {
		emit(o.Hooks, Event{Phase: "done", ID: c.String(), Msg: "up to date"})
		return &UpgradeResult{Candidate: name, Version: version}, nil
	}
	if _, err := o.Install(ctx, InstallRequest{Candidate: name, Version: version, MakeDefault: makeDefault}); err != nil {
		return nil, err
	}
	return &UpgradeResult{Candidate: name, Version: version, Installed: true}, nil
}
