// Command cdc-producer continuously writes randomized users and user activities to PostgreSQL or
// Oracle so that a change-data-capture pipeline has a steady stream of changes to pick up.
//
// Usage:
//
//	cdc-producer [--interval seconds]
//
// Connection settings come from the environment (CDC_MODE, DB_HOST, ORACLE_HOST, ...), see the
// config package. The process stops cleanly on SIGINT or SIGTERM.
package main

import (
	"errors"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		log.Error().Err(err).Msg("producer exited with error")
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var coder cli.ExitCoder
	if errors.As(err, &coder) && coder.ExitCode() != 0 {
		return coder.ExitCode()
	}

	return exitFailure
}
