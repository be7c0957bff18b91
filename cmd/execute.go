package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/envseal/internal/ui"
)

// Execute runs the root command. Errors already reported to the user are
// returned without being printed again.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprint(rootCmd.ErrOrStderr(), ui.FailureMessage(err.Error(),
			"Run "+ui.Code.Sprint(rootCmd.CommandPath()+" --help")+" for usage"))
	}
	return err
}
