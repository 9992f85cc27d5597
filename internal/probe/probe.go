package probe

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/thoreinstein/zcf/internal/logging"
	"github.com/thoreinstein/zcf/internal/runner"
)

// Platform is the OS family.
type Platform string

const (
	Windows Platform = "windows"
	MacOS   Platform = "macos"
	Linux   Platform = "linux"
)

// termuxDefaultPrefix is where Termux installs its userland.
const termuxDefaultPrefix = "/data/data/com.termux/files/usr"

var prettyName = regexp.MustCompile(`(?m)^PRETTY_NAME="(.+)"$`)

// Probe answers host environment queries.
type Probe struct {
	sys    System
	runner runner.Runner
}

// New creates a Probe. A nil sys means OS{}; a nil r means runner.New().
func New(sys System, r runner.Runner) *Probe {
	if sys == nil {
		sys = OS{}
	}
	if r == nil {
		r = runner.New()
	}
	return &Probe{sys: sys, runner: r}
}

// Platform maps GOOS onto windows, macos or linux. Unknown systems count as linux.
func (p *Probe) Platform() Platform {
	switch p.sys.GOOS() {
	case "windows":
		return Windows
	case "darwin":
		return MacOS
	default:
		return Linux
	}
}

func (p *Probe) getenv(key string) string {
	v, _ := p.sys.LookupEnv(key)
	return v
}

func (p *Probe) exists(path string) bool {
	_, err := p.sys.Stat(path)
	return err == nil
}

// IsRestrictedShell reports whether zcf runs inside Termux on Android.
func (p *Probe) IsRestrictedShell() bool {
	if strings.Contains(p.getenv("PREFIX"), "com.termux") {
		return true
	}
	if _, ok := p.sys.LookupEnv("TERMUX_VERSION"); ok {
		return true
	}
	return p.exists(termuxDefaultPrefix)
}

// TermuxPrefix returns $PREFIX, or the default Termux prefix when unset.
func (p *Probe) TermuxPrefix() string {
	if v := p.getenv("PREFIX"); v != "" {
		return v
	}
	return termuxDefaultPrefix
}

// IsWSL reports whether zcf runs under Windows Subsystem for Linux.
func (p *Probe) IsWSL() bool {
	if p.getenv("WSL_DISTRO_NAME") != "" {
		return true
	}
	if data, err := p.sys.ReadFile("/proc/version"); err == nil {
		v := string(data)
		if strings.Contains(v, "Microsoft") || strings.Contains(v, "WSL") {
			return true
		}
	}
	return p.exists("/mnt/c")
}

// WSLInfo describes the WSL distribution.
type WSLInfo struct {
	Distro string
	Kernel string
}

// WSLInfo returns distribution details, or false when not under WSL.
func (p *Probe) WSLInfo() (WSLInfo, bool) {
	if !p.IsWSL() {
		return WSLInfo{}, false
	}
	var info WSLInfo
	if data, err := p.sys.ReadFile("/proc/version"); err == nil {
		info.Kernel = strings.TrimSpace(string(data))
	}
	info.Distro = p.getenv("WSL_DISTRO_NAME")
	if info.Distro == "" {
		if data, err := p.sys.ReadFile("/etc/os-release"); err == nil {
			if m := prettyName.FindSubmatch(data); m != nil {
				info.Distro = string(m[1])
			}
		}
	}
	return info, true
}

// CommandExists reports whether name can be run. It asks which (or where on
// Windows) first, then looks in well-known install directories.
func (p *Probe) CommandExists(ctx context.Context, name string) bool {
	lookup := "which"
	if p.Platform() == Windows {
		lookup = "where"
	}
	if _, err := p.runner.Run(ctx, runner.Cmd(lookup, name)); err == nil {
		return true
	}

	for _, dir := range p.fallbackDirs() {
		if p.exists(filepath.Join(dir, name)) {
			logging.FromContext(ctx).Debug("command found outside PATH", "command", name, "dir", dir)
			return true
		}
	}
	return false
}

func (p *Probe) fallbackDirs() []string {
	var dirs []string
	if p.IsRestrictedShell() {
		prefix := p.TermuxPrefix()
		dirs = append(dirs,
			filepath.Join(prefix, "bin"),
			filepath.Join(prefix, "usr", "bin"),
			filepath.Join(termuxDefaultPrefix, "bin"),
		)
	}
	if p.Platform() != Windows {
		dirs = append(dirs, "/usr/local/bin", "/usr/bin", "/bin")
		if home := p.getenv("HOME"); home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "bin"))
		}
	}
	return dirs
}

// NpmPrefix returns the global npm prefix: npm_config_prefix, NPM_CONFIG_PREFIX
// or PREFIX, else the parent of the directory holding node.
func (p *Probe) NpmPrefix() string {
	for _, key := range []string{"npm_config_prefix", "NPM_CONFIG_PREFIX", "PREFIX"} {
		if v := p.getenv(key); v != "" {
			return v
		}
	}
	node, err := p.sys.LookPath("node")
	if err != nil || node == "" {
		return ""
	}
	return filepath.Dir(filepath.Dir(node))
}

// RequiresElevatedInstall reports whether a global npm install needs sudo.
//
// Only Linux outside Termux can require it. A prefix under $HOME or one the
// user can write to never does; otherwise non-root users do.
func (p *Probe) RequiresElevatedInstall() bool {
	if p.IsRestrictedShell() || p.Platform() != Linux {
		return false
	}
	if prefix := p.NpmPrefix(); prefix != "" {
		if insideHome(prefix, p.getenv("HOME")) || p.sys.Writable(prefix) {
			return false
		}
	}
	return p.sys.Geteuid() != 0
}

// WrapElevated prefixes cmd with sudo when elevation is required and
// reports whether it did.
func (p *Probe) WrapElevated(cmd runner.Command) (runner.Command, bool) {
	if !p.RequiresElevatedInstall() {
		return cmd, false
	}
	return runner.Command{
		Name:   "sudo",
		Args:   cmd.Argv(),
		Stream: cmd.Stream,
	}, true
}

// WrapWindowsCommand runs npx, uvx and uv through cmd /c on Windows, which
// they need to resolve their .cmd shims.
func (p *Probe) WrapWindowsCommand(command string) []string {
	switch command {
	case "npx", "uvx", "uv":
		if p.Platform() == Windows {
			return []string{"cmd", "/c", command}
		}
	}
	return []string{command}
}

func normalize(path string) string {
	path = strings.ReplaceAll(path, `\`, "/")
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return strings.TrimRight(path, "/")
}

func insideHome(path, home string) bool {
	if home == "" {
		return false
	}
	h, p := normalize(home), normalize(path)
	return p == h || strings.HasPrefix(p, h+"/")
}
