// Package log configures the process-wide logrus logger.
// Packages log through logrus directly (imported as log); this package only owns setup.
package log

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/twitter/icewire/common/log/hooks"
)

// Configure sets the global level from a name like "info" or "debug", and installs
// the context hook when withCaller is set.
func Configure(level string, withCaller bool) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	logrus.SetLevel(l)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if withCaller {
		logrus.AddHook(hooks.NewContextHook())
	}
	return nil
}

// SetOutput redirects the global logger, returning the old writer.
func SetOutput(w io.Writer) io.Writer {
	old := logrus.StandardLogger().Out
	logrus.SetOutput(w)
	return old
}
