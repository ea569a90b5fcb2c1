package system

import (
	"os"
	"strings"
)

// venvMarker points at whatever virtualenv the parent process was in.
// A sandbox shell must start without it, or activation inside the
// worktree silently keeps using the old environment.
const venvMarker = "VIRTUAL_ENV"

// SandboxEnviron returns a copy of the current environment suitable for a
// sandbox shell: the inherited virtualenv marker is dropped and
// cw-owned entries are removed from PATH.
func SandboxEnviron() []string {
	return sandboxEnviron(os.Environ())
}

func sandboxEnviron(environ []string) []string {
	env := make([]string, 0, len(environ))
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		switch {
		case key == venvMarker:
			continue
		case key == "PATH":
			env = append(env, "PATH="+filterPath(value))
		default:
			env = append(env, kv)
		}
	}
	return env
}

// filterPath removes claudway-owned entries from a PATH-style value.
func filterPath(path string) string {
	parts := strings.Split(path, string(os.PathListSeparator))
	kept := parts[:0]
	for _, p := range parts {
		if strings.Contains(p, "claudway") {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, string(os.PathListSeparator))
}
