package hooks

import (
	"runtime/debug"
	"strings"

	"github.com/sirupsen/logrus"
)

// contextHook adds the file:line of the logging call site to every entry.
type contextHook struct {
}

func NewContextHook() contextHook {
	return contextHook{}
}

func (hook contextHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (hook contextHook) Fire(entry *logrus.Entry) error {
	if site := callSite(string(debug.Stack())); site != "" {
		entry.Data["file:line"] = site
	}
	return nil
}

// callSite finds the first frame in stack that is neither logrus nor this hook,
// and returns its file:line relative to the module root.
func callSite(stack string) string {
	lines := strings.Split(stack, "\n")
	// Frames come in pairs: function line, then "\tfile:line +0x..".
	for i := 1; i+1 < len(lines); i += 2 {
		fn := lines[i]
		if strings.Contains(fn, "sirupsen/logrus") ||
			strings.Contains(fn, "common/log/hooks") ||
			strings.HasPrefix(fn, "runtime/debug") {
			continue
		}
		loc := strings.TrimSpace(lines[i+1])
		if sp := strings.LastIndex(loc, " +0x"); sp >= 0 {
			loc = loc[:sp]
		}
		parts := strings.Split(loc, "icewire/")
		return parts[len(parts)-1]
	}
	return ""
}
