package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/twitter/icewire/client"
	"github.com/twitter/icewire/common/errors"
	"github.com/twitter/icewire/common/log/hooks"
)

// CLI binary to run pipeline actions wired from shared contexts
//	Supported commands: (see "-h" for all options)
//		run [body...]
//		contexts
//	Global flags:
//		--config_dir [directory holding contextRefs.json and the context definitions]
//		--selector [locator configuration, default contextRefs.json]
//		--log_level [<error|info|debug> level and above should be logged]

func main() {
	log.AddHook(hooks.NewContextHook())

	cl := client.NewSimpleCLIClient(nil)
	if err := cl.Exec(); err != nil {
		log.Error("Error running icewire: ", err)
		os.Exit(exitCode(err))
	}
}

// exitCode is the code of the first tagged error in err, or 1.
func exitCode(err error) int {
	for _, e := range multierr.Errors(err) {
		if ec, ok := e.(*errors.ExitCodeError); ok {
			return int(ec.GetExitCode())
		}
	}
	return 1
}
