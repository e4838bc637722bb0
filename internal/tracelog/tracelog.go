// Package tracelog provides a minimal, environment-gated trace log for debugging snapshot checks.
package tracelog

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// EnvVar names the environment variable holding the trace log path.
const EnvVar = "SNAPCHECK_LOG_FILE"

var mu sync.Mutex

// Log appends a printf-formatted, newline-terminated record to the file named by the SNAPCHECK_LOG_FILE environment variable. When the variable is unset or
// empty, or the path cannot be opened for appending, Log is a no-op.
func Log(format string, args ...any) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return
	}

	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	// Serialize open/write/close so records from the same process don't interleave.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.WriteString(msg)
}
