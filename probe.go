package logkit

import (
	"os"
	"runtime/debug"
	"strconv"
	"strings"
)

// DefaultPreviewEnv is the variable consulted by Default() to detect a
// preview/sandbox run. Any value strconv.ParseBool accepts as true enables it.
const DefaultPreviewEnv = "LOGKIT_PREVIEW"

// Probe answers a yes/no question about the runtime environment.
// Loggers evaluate their preview probe on every call.
type Probe func() bool

// EnvProbe reports whether the environment variable key parses as true.
// Unset or unparsable values read as false.
func EnvProbe(key string) Probe {
	return func() bool {
		v, ok := os.LookupEnv(key)
		if !ok {
			return false
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	}
}

// Always returns a Probe with a fixed answer.
func Always(v bool) Probe {
	return func() bool { return v }
}

// defaultSubsystem identifies the host application by its main module path.
func defaultSubsystem() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	return info.Main.Path
}
