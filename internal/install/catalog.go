package install

import (
	"slices"

	"github.com/thoreinstein/zcf/internal/probe"
	"github.com/thoreinstein/zcf/internal/tool"
)

// MethodOption is one entry offered to the user.
type MethodOption struct {
	Method tool.Method
	// Recommended marks the single top recommendation.
	Recommended bool
}

// recommended is the ecosystem-convention ordering per tool and platform.
// Linux entries also apply to WSL.
var recommended = map[tool.Tool]map[probe.Platform][]tool.Method{
	tool.Claude: {
		probe.MacOS:   {tool.Homebrew, tool.Curl, tool.NPM},
		probe.Linux:   {tool.Curl, tool.NPM},
		probe.Windows: {tool.PowerShell, tool.NPM},
	},
	tool.Codex: {
		probe.MacOS:   {tool.Homebrew, tool.NPM},
		probe.Linux:   {tool.NPM},
		probe.Windows: {tool.NPM},
	},
	tool.Gemini: {
		probe.MacOS:   {tool.Homebrew, tool.NPM},
		probe.Linux:   {tool.NPM, tool.Homebrew},
		probe.Windows: {tool.NPM},
	},
}

// RecommendedMethods returns the preferred methods for t on p, best first.
// WSL hosts report Linux and use the Linux ordering.
func RecommendedMethods(t tool.Tool, p probe.Platform, wsl bool) []tool.Method {
	if wsl {
		p = probe.Linux
	}
	return slices.Clone(recommended[t][p])
}

// AvailableMethods returns every method usable for t on p. Recommended
// methods come first in recommendation order, followed by the remaining
// methods in catalog order. Only the top recommendation is flagged.
func AvailableMethods(t tool.Tool, p probe.Platform, wsl bool) []MethodOption {
	info, ok := tool.Lookup(t)
	if !ok {
		return nil
	}
	usable := func(m tool.Method) bool {
		return info.Supports(m) && m.AvailableOn(p, wsl)
	}

	recs := RecommendedMethods(t, p, wsl)
	var top tool.Method
	if len(recs) > 0 {
		top = recs[0]
	}

	var opts []MethodOption
	seen := make(map[tool.Method]bool)
	add := func(m tool.Method) {
		if seen[m] || !usable(m) {
			return
		}
		seen[m] = true
		opts = append(opts, MethodOption{Method: m, Recommended: m == top})
	}
	for _, m := range recs {
		add(m)
	}
	for _, m := range tool.Methods() {
		add(m)
	}
	return opts
}

// Resolution is the method that will actually run for a request.
type Resolution struct {
	Requested tool.Method
	Method    tool.Method
	// FellBack is true when Method differs from Requested because the tool
	// does not support the requested method.
	FellBack bool
}

// Resolve maps a requested method onto one t supports. Unsupported methods
// fall back to npm, which every tool supports.
func Resolve(m tool.Method, t tool.Tool) Resolution {
	info, ok := tool.Lookup(t)
	if ok && info.Supports(m) {
		return Resolution{Requested: m, Method: m}
	}
	return Resolution{Requested: m, Method: tool.NPM, FellBack: m != tool.NPM}
}
