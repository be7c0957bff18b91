package kubeseal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	kerrors "github.com/PolarWolf314/envseal/internal/errors"
)

// DefaultBinary is looked up on PATH when Sealer.Binary is empty.
const DefaultBinary = "kubeseal"

// Sealer invokes kubeseal with a fixed flag set.
type Sealer struct {
	// Binary is a name resolved on PATH or a path to the executable.
	Binary string

	ControllerName      string
	ControllerNamespace string
	Scope               string

	// Echo, when non-nil, receives a copy of the sealed manifest as it is
	// written. Nil corresponds to --print-none.
	Echo io.Writer

	// Stderr receives kubeseal's stderr. Defaults to os.Stderr.
	Stderr io.Writer
}

// ExitError reports a non-zero kubeseal exit.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%v: exit status %d", kerrors.ErrSealerFailed, e.Code)
}

func (e *ExitError) Unwrap() []error {
	return []error{kerrors.ErrSealerFailed, e.Err}
}

// Args returns the argument list passed to kubeseal.
func (s *Sealer) Args() []string {
	return []string{
		"--scope", s.Scope,
		"--format=yaml",
		"--controller-name", s.ControllerName,
		"--controller-namespace", s.ControllerNamespace,
	}
}

// LookPath resolves the kubeseal binary.
// Returns ErrSealerNotFound if it cannot be found or is not executable.
func (s *Sealer) LookPath() (string, error) {
	bin := s.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not installed or not on PATH: %v", kerrors.ErrSealerNotFound, bin, err)
	}
	return path, nil
}

// Seal feeds the manifest at manifestPath to kubeseal on stdin and writes
// the sealed manifest to resultPath, teeing it to Echo when set.
//
// Returns ErrSealerNotFound if the binary is missing and an *ExitError
// wrapping ErrSealerFailed if kubeseal exits non-zero.
func (s *Sealer) Seal(ctx context.Context, manifestPath, resultPath string) error {
	if err := ValidateScope(s.Scope); err != nil {
		return err
	}

	bin, err := s.LookPath()
	if err != nil {
		return err
	}

	in, err := os.Open(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to open manifest %s: %w", manifestPath, err)
	}
	defer in.Close()

	out, err := os.OpenFile(resultPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", resultPath, err)
	}
	defer out.Close()

	var stdout io.Writer = out
	if s.Echo != nil {
		stdout = io.MultiWriter(out, s.Echo)
	}

	stderr := s.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	cmd := exec.CommandContext(ctx, bin, s.Args()...)
	cmd.Stdin = in
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Err: err}
		}
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", kerrors.ErrSealerNotFound, err)
		}
		return fmt.Errorf("failed to run %s: %w", bin, err)
	}

	return out.Close()
}
