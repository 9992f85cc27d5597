package install

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/logging"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/internal/probe"
	"github.com/thoreinstein/zcf/internal/runner"
	"github.com/thoreinstein/zcf/internal/tool"
)

// Installer script commands for Claude Code.
const (
	claudeShScript  = "curl -fsSL https://claude.ai/install.sh | bash"
	claudePs1Script = "irm https://claude.ai/install.ps1 | iex"
	claudeCmdScript = "curl -fsSL https://claude.ai/install.cmd -o install.cmd && install.cmd && del install.cmd"
)

// Environment is the host information the executor needs. *probe.Probe
// satisfies it.
type Environment interface {
	Platform() probe.Platform
	IsWSL() bool
	IsRestrictedShell() bool
	CommandExists(ctx context.Context, name string) bool
	WrapElevated(cmd runner.Command) (runner.Command, bool)
}

// Executor runs install, uninstall and update commands.
type Executor struct {
	env     Environment
	runner  runner.Runner
	records RecordStore

	claudeLocalBinary string
}

// Option configures an Executor.
type Option func(*Executor)

// WithRecords overrides where installation records are kept.
func WithRecords(r RecordStore) Option {
	return func(e *Executor) {
		e.records = r
	}
}

// WithClaudeLocalBinary overrides the path of Claude's local install.
func WithClaudeLocalBinary(path string) Option {
	return func(e *Executor) {
		e.claudeLocalBinary = path
	}
}

// NewExecutor creates an Executor.
func NewExecutor(env Environment, r runner.Runner, opts ...Option) *Executor {
	e := &Executor{
		env:               env,
		runner:            r,
		records:           DefaultRecords(""),
		claudeLocalBinary: paths.ClaudeLocalBinary(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Report describes what an install or update actually ran.
type Report struct {
	Resolution
	Command runner.Command
	// Elevated is true when the command was prefixed with sudo.
	Elevated bool
}

// installCommand builds the single command for a resolved method.
func installCommand(info tool.Info, m tool.Method) runner.Command {
	switch m {
	case tool.Homebrew:
		if info.BrewCask {
			return runner.Cmd("brew", "install", "--cask", info.BrewName)
		}
		return runner.Cmd("brew", "install", info.BrewName)
	case tool.Curl:
		return runner.Cmd("bash", "-c", claudeShScript)
	case tool.PowerShell:
		return runner.Cmd("powershell", "-Command", claudePs1Script)
	case tool.CMD:
		return runner.Cmd("cmd", "/c", claudeCmdScript)
	default:
		return runner.Cmd("npm", "install", "-g", info.NPMPackage)
	}
}

// Install runs method for t. The method is resolved once up front;
// unsupported methods become npm. On success the resolved method is
// recorded for tools that keep a record. A failed command returns an
// *errors.ExecutionError.
func (e *Executor) Install(ctx context.Context, method tool.Method, t tool.Tool) (Report, error) {
	info, ok := tool.Lookup(t)
	if !ok {
		return Report{}, errors.Wrapf(errors.ErrUnknownTool, "%q", t)
	}
	logger := logging.FromContext(ctx).With("tool", t)

	res := Resolve(method, t)
	if res.FellBack {
		logger.Warn("install method not supported, falling back", "requested", res.Requested, "method", res.Method)
	}

	report := Report{Resolution: res, Command: installCommand(info, res.Method).Streaming()}
	if res.Method == tool.NPM {
		report.Command, report.Elevated = e.env.WrapElevated(report.Command)
	}

	logger.Info("installing", "method", res.Method, "elevated", report.Elevated)
	if _, err := e.runner.Run(ctx, report.Command); err != nil {
		return report, errors.Wrapf(err, "installing %s with %s", info.DisplayName, res.Method)
	}

	if info.RecordsMethod {
		if err := e.records.WriteMethod(t, res.Method); err != nil {
			// Record failures do not fail the install.
			logger.Warn("could not record install method", "error", err)
		}
	}
	return report, nil
}

var versionPattern = regexp.MustCompile(`(\d+\.\d+\.\d+)`)

// Status is the installation state of one tool.
type Status struct {
	Tool      tool.Tool
	Installed bool
	// Version is parsed from "<binary> --version"; empty when unknown.
	Version string
	// Method is the recorded install method, empty when none is recorded.
	Method tool.Method
	// LocalInstalled is true when Claude's local install exists and is executable.
	LocalInstalled bool
	LocalPath      string
}

// DetectVersion runs "<binary> --version" and extracts a semantic version.
// The trimmed output is returned when no version number is present.
func (e *Executor) DetectVersion(ctx context.Context, t tool.Tool) (string, bool) {
	info, ok := tool.Lookup(t)
	if !ok {
		return "", false
	}
	res, err := e.runner.Run(ctx, runner.Cmd(info.Binary, "--version"))
	if err != nil || strings.TrimSpace(res.Stdout) == "" {
		return "", false
	}
	if m := versionPattern.FindString(res.Stdout); m != "" {
		return m, true
	}
	return strings.TrimSpace(res.Stdout), true
}

// Status reports whether t is installed, its version and its record.
func (e *Executor) Status(ctx context.Context, t tool.Tool) (Status, error) {
	info, ok := tool.Lookup(t)
	if !ok {
		return Status{}, errors.Wrapf(errors.ErrUnknownTool, "%q", t)
	}
	st := Status{Tool: t, Installed: e.env.CommandExists(ctx, info.Binary)}
	if st.Installed {
		st.Version, _ = e.DetectVersion(ctx, t)
	}
	if m, ok, err := e.records.ReadMethod(t); err == nil && ok {
		st.Method = m
	}
	if info.Local {
		st.LocalPath = e.claudeLocalBinary
		st.LocalInstalled = isExecutable(st.LocalPath)
	}
	return st, nil
}

func isExecutable(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return false
	}
	return fi.Mode().Perm()&0o111 != 0
}

// RemoveLocalInstall deletes the directory holding Claude's local install.
// A missing directory is not an error.
func (e *Executor) RemoveLocalInstall() error {
	if e.claudeLocalBinary == "" {
		return nil
	}
	dir := filepath.Dir(e.claudeLocalBinary)
	if err := os.RemoveAll(dir); err != nil {
		return errors.Wrapf(err, "removing local installation %s", dir)
	}
	return nil
}

// Update upgrades t with the method that installed it.
func (e *Executor) Update(ctx context.Context, t tool.Tool) (Report, error) {
	info, ok := tool.Lookup(t)
	if !ok {
		return Report{}, errors.Wrapf(errors.ErrUnknownTool, "%q", t)
	}
	method, _ := e.resolveUninstallMethod(ctx, t)

	report := Report{Resolution: Resolution{Requested: method, Method: method}}
	switch method {
	case tool.Homebrew:
		if info.BrewCask {
			report.Command = runner.Cmd("brew", "upgrade", "--cask", info.BrewName)
		} else {
			report.Command = runner.Cmd("brew", "upgrade", info.BrewName)
		}
	case tool.NPM:
		report.Command, report.Elevated = e.env.WrapElevated(runner.Cmd("npm", "update", "-g", info.NPMPackage))
	default:
		if t != tool.Claude {
			return report, errors.Newf("%s was installed manually and cannot be updated by zcf", info.DisplayName)
		}
		// The native installer ships a self-updater.
		report.Command = runner.Cmd(info.Binary, "update")
	}
	report.Command = report.Command.Streaming()

	logging.FromContext(ctx).Info("updating", "tool", t, "method", method)
	if _, err := e.runner.Run(ctx, report.Command); err != nil {
		return report, errors.Wrapf(err, "updating %s", info.DisplayName)
	}
	return report, nil
}
