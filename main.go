package main

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"os/signal"

	log "github.com/sirupsen/logrus"

	"github.com/wejn/xrandr-by-edid/match"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := Execute(ctx); err != nil {
		var unmatched *match.UnmatchedError
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &unmatched):
			log.WithField("serials", unmatched.Serials).Error("strict matching failed")
			os.Exit(1)
		case errors.As(err, &exitErr):
			// hand xrandr's own exit status through
			log.WithError(err).Error("apply command failed")
			os.Exit(exitErr.ExitCode())
		default:
			log.WithError(err).Error("xrandr-by-edid failed")
			os.Exit(1)
		}
	}
}
