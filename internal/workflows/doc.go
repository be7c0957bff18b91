// Package workflows provides high-level orchestration for envseal.
//
// A workflow coordinates the envfile, manifest and kubeseal packages to
// implement a complete user-facing operation, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package so the CLI
// layer can choose user-facing messages without string matching:
//
//	result, err := workflows.Seal(ctx, opts)
//	if errors.Is(err, kerrors.ErrSealerNotFound) {
//	    // Show install hint
//	}
//
// # Context Usage
//
// Workflow functions accept a context.Context as their first parameter; it
// is passed to the kubeseal child process so interrupts terminate it.
package workflows
