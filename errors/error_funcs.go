package errors

import (
	"os"

	log "github.com/fleetops/fleetctl/pkg/logger"
)

// OsExit is a variable for testing, so we can mock os.Exit.
var OsExit = os.Exit

// CheckErrorAndPrint prints an error message.
func CheckErrorAndPrint(err error) {
	if err == nil {
		return
	}
	log.Error(err.Error())
}

// CheckErrorPrintAndExit prints an error message and exits with exit code 1.
func CheckErrorPrintAndExit(err error) {
	if err == nil {
		return
	}
	CheckErrorAndPrint(err)
	Exit(1)
}

// Exit terminates the process with the given exit code.
func Exit(exitCode int) {
	OsExit(exitCode)
}
