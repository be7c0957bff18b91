// Package errors provides typed error values for envseal.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Source errors: the env file is missing or unparseable (ErrSourceNotFound, ErrMalformedLine)
//   - Manifest errors: the Secret name, namespace or keys are invalid (ErrInvalidManifest)
//   - Sealer errors: kubeseal is missing or failed (ErrSealerNotFound, ErrSealerFailed, ErrInvalidScope)
//   - Config errors: the defaults file is malformed (ErrConfigInvalid)
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("reading %s: %w", path, errors.ErrSourceNotFound)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, kerrors.ErrSealerNotFound) {
//	    // Show install hint
//	}
package errors
