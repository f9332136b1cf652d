package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fleetops/fleetctl/cmd"
	errUtils "github.com/fleetops/fleetctl/errors"
)

func main() {
	// Exit with the correct POSIX exit code (128 + signal number) on
	// interruption.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		if s, ok := sig.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(s))
		}
		errUtils.OsExit(130)
	}()

	cmd.Execute()
}
