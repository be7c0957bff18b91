package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/PolarWolf314/envseal/internal/kubeseal"
	"github.com/PolarWolf314/envseal/internal/ui"
	"github.com/briandowns/spinner"
)

// startSpinner creates a spinner on out with the given message and starts it
// when enabled. Returns the spinner and a function that should be deferred
// to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message and prints it to out whether
// or not the spinner was running.
func startSpinner(out io.Writer, message string, enabled bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if enabled {
		Logger.Debugf("Starting spinner with message: %s", message)
		s.Start()
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if enabled {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(out, finalMsg)
		}
	}

	return s, cleanup
}

// ExitCode maps an error returned by Execute to a process exit status.
// kubeseal's own non-zero status is passed through; everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *kubeseal.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
