package cli

import (
	"fmt"
	"strings"

	"github.com/linux-china/wukong/internal/logger"
	"github.com/linux-china/wukong/pkg/archive"
	"github.com/linux-china/wukong/pkg/config"
	"github.com/linux-china/wukong/pkg/download"
	"github.com/linux-china/wukong/pkg/hooks"
	"github.com/linux-china/wukong/pkg/orchestrator"
	"github.com/linux-china/wukong/pkg/platform"
	"github.com/linux-china/wukong/pkg/resolver"
	"github.com/linux-china/wukong/pkg/store"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	NoColor      *bool
	OutputFormat *string
)

// loadConfig loads the configuration file, overlays the environment and the
// global flags, and initializes logging accordingly.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if NoColor != nil && *NoColor {
		cfg.Settings.ColorOutput = false
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel, logger.ParseOutputFormat(cfg.Settings.OutputFormat))
	setColor(cfg.Settings.ColorOutput)
	return cfg, nil
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// app wires the engine components a command needs from the configuration.
type app struct {
	cfg      *config.Config
	platform platform.Platform
	sdkman   *store.Store
	jbang    *store.Store
	broker   *resolver.BrokerResolver
	disco    *resolver.DiscoResolver
	scripts  hooks.HookManager
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	opts := cfg.HTTPOptions()
	fetcher := download.NewFetcher(opts)
	extractor := archive.NewManager()

	scripts := hooks.NewHookManager()
	if err := hooks.LoadHooksFromDir(scripts, cfg.Settings.HooksDir); err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		platform: cfg.Platform(),
		sdkman:   store.New(store.NewSDKMANLayout(cfg.Settings.SDKMANDir), fetcher, extractor),
		jbang:    store.New(store.NewJBangLayout(cfg.Settings.JBangDir), fetcher, extractor),
		broker:   resolver.NewBrokerResolver(cfg.Settings.BrokerURL, opts),
		disco:    resolver.NewDiscoResolver(cfg.Settings.DiscoURL, cfg.Settings.Distro, opts),
		scripts:  scripts,
	}, nil
}

// orchestrator returns an orchestrator over the SDKMAN store.
func (a *app) orchestrator() *orchestrator.Orchestrator {
	return &orchestrator.Orchestrator{
		Resolver: &resolver.Router{Disco: a.disco, Broker: a.broker},
		Versions: a.broker,
		Store:    a.sdkman,
		Scripts:  a.scripts,
		Platform: a.platform,
		Hooks:    progressHooks(),
	}
}

// jdkOrchestrator returns an orchestrator over the JBang JDK store, resolving through Disco.
func (a *app) jdkOrchestrator() *orchestrator.Orchestrator {
	return &orchestrator.Orchestrator{
		Resolver: a.disco,
		Store:    a.jbang,
		Scripts:  a.scripts,
		Platform: a.platform,
		Hooks:    progressHooks(),
	}
}

func progressHooks() orchestrator.Hooks {
	return orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		logger.Debug(e.Phase, logger.Fields{"candidate": e.ID, "detail": e.Msg})
	}}
}

// resolveInstalled maps a version query onto an installed version of name.
func resolveInstalled(st *store.Store, name, query string) (store.Candidate, error) {
	c := store.Candidate{Name: name, Version: query}
	if st.Exists(c) {
		return c, nil
	}
	if v, ok, err := st.FindVersion(name, query); err != nil {
		return c, err
	} else if ok {
		return store.Candidate{Name: name, Version: v}, nil
	}
	return c, fmt.Errorf("%s %s is not installed, run 'wukong install %s %s' first: %w", name, query, name, query, errNotInstalled)
}

func candidate(name, version string) store.Candidate {
	return store.Candidate{Name: name, Version: version}
}

func candidateArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.ToLower(args[0])
}
