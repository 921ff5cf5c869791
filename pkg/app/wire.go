package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"

	"github.com/mattn/go-isatty"

	"github.com/flemzord/cronpad/internal/config"
	"github.com/flemzord/cronpad/internal/crontab"
	"github.com/flemzord/cronpad/internal/history"
	"github.com/flemzord/cronpad/internal/lifecycle"
	"github.com/flemzord/cronpad/internal/logging"
	"github.com/flemzord/cronpad/internal/metrics"
	"github.com/flemzord/cronpad/internal/prompt"
)

// Params carries command-line overrides on top of the configuration file.
type Params struct {
	// ConfigPath is an explicit path to the YAML configuration file.
	// If empty, config.ResolveConfigPath is used and a missing file means
	// defaults.
	ConfigPath string

	// File switches to the file backend on this path.
	File string

	// User edits another user's crontab.
	User string

	// LogLevel and UIMode override log.level and ui.mode when set.
	LogLevel string
	UIMode   string

	// In and Out default to the process stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// Env holds the components built from the configuration. Close releases
// them and writes the metrics textfile.
type Env struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Backend    crontab.Backend
	Journal    *history.Journal
	Metrics    *metrics.Metrics

	in      io.Reader
	out     io.Writer
	closers []func() error
}

// Setup loads and validates the configuration, applies params and builds
// the logger, backend, journal and metrics.
func Setup(ctx context.Context, params Params) (*Env, error) {
	cfg, cfgPath, err := config.LoadOrDefault(params.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg, params)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	redactor, err := newRedactor(cfg.Log)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.Open(level, cfg.Log.File, redactor)
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config:     cfg,
		ConfigPath: cfgPath,
		Logger:     logger,
		Backend:    newBackend(cfg.Backend),
		in:         params.In,
		out:        params.Out,
		closers:    []func() error{closeLog},
	}
	if env.in == nil {
		env.in = os.Stdin
	}
	if env.out == nil {
		env.out = os.Stdout
	}

	if cfg.History.IsEnabled() {
		j, err := history.Open(ctx, cfg.History.Path)
		if err != nil {
			// The journal is an audit aid; the editor works without it.
			logger.Warn("history disabled", "path", cfg.History.Path, "error", err)
		} else {
			env.Journal = j
			env.closers = append(env.closers, j.Close)
		}
	}
	if cfg.Metrics.Textfile != "" {
		env.Metrics = metrics.New()
	}

	logger.Debug("cronpad configured",
		"config", cfgPath,
		"backend", cfg.Backend.Kind,
		"history", env.Journal != nil,
		"metrics", env.Metrics != nil,
	)
	return env, nil
}

func applyOverrides(cfg *config.Config, params Params) {
	if params.File != "" {
		cfg.Backend.Kind = config.BackendFile
		cfg.Backend.Path = params.File
		cfg.Backend.User = ""
	}
	if params.User != "" {
		cfg.Backend.User = params.User
	}
	if params.LogLevel != "" {
		cfg.Log.Level = params.LogLevel
	}
	if params.UIMode != "" {
		cfg.UI.Mode = params.UIMode
	}
}

// newRedactor adds the configured patterns and the values of the named
// environment variables to the default redaction rules.
func newRedactor(cfg config.LogConfig) (*logging.Redactor, error) {
	r := logging.NewRedactor()
	for _, p := range cfg.Redact {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("app: log.redact: %w", err)
		}
		r.AddPattern(re)
	}
	for _, name := range cfg.RedactEnv {
		r.AddLiteral(os.Getenv(name))
	}
	return r, nil
}

func newBackend(cfg config.BackendConfig) crontab.Backend {
	if cfg.Kind == config.BackendFile {
		return &crontab.FileBackend{Path: cfg.Path}
	}
	return &crontab.CommandBackend{Binary: cfg.Binary, User: cfg.User}
}

// Manager builds a lifecycle manager over the configured backend, with the
// journal and metrics attached when enabled.
func (e *Env) Manager(ctx context.Context, confirmer lifecycle.Confirmer) (*lifecycle.Manager, error) {
	cfg := lifecycle.Config{
		Backend:   e.Backend,
		Confirmer: confirmer,
		Logger:    e.Logger,
	}
	if e.Journal != nil {
		cfg.Journal = e.Journal
	}
	if e.Metrics != nil {
		cfg.Recorder = e.Metrics
	}
	m, err := lifecycle.NewManager(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if e.Journal != nil {
		e.Journal.Owner = m.Table().Owner
	}
	return m, nil
}

// Prompter returns the prompter selected by ui.mode. In auto mode huh
// forms are used only when both ends are terminals.
func (e *Env) Prompter() prompt.Prompter {
	switch e.Config.UI.Mode {
	case config.UIForm:
		return prompt.NewForm(e.out)
	case config.UILine:
		return prompt.NewLine(e.in, e.out)
	}
	if isTerminal(e.in) && isTerminal(e.out) {
		return prompt.NewForm(e.out)
	}
	return prompt.NewLine(e.in, e.out)
}

// Out is where operator-facing output goes.
func (e *Env) Out() io.Writer { return e.out }

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Close writes the metrics textfile and releases every resource.
func (e *Env) Close() error {
	var errs []error
	if e.Metrics != nil {
		if err := e.Metrics.WriteTextfile(e.Config.Metrics.Textfile); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("app: close: %w", err)
	}
	return nil
}
