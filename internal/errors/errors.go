package errors

import "errors"

// Source errors indicate issues reading or parsing the env file.
var (
	// ErrSourceNotFound indicates the env file does not exist.
	ErrSourceNotFound = errors.New("env file not found")

	// ErrMalformedLine indicates a line without '=' or with unbalanced shell quoting.
	ErrMalformedLine = errors.New("malformed env line")
)

// Manifest errors indicate the Secret cannot be built from the given inputs.
var (
	// ErrInvalidManifest indicates the name, namespace, or a data key is not valid for a Secret.
	ErrInvalidManifest = errors.New("invalid secret manifest")
)

// Sealer errors indicate issues with the external kubeseal binary.
var (
	// ErrSealerNotFound indicates the kubeseal binary could not be located on PATH.
	ErrSealerNotFound = errors.New("kubeseal binary not found")

	// ErrSealerFailed indicates kubeseal ran but exited with a non-zero status.
	ErrSealerFailed = errors.New("kubeseal failed")

	// ErrInvalidScope indicates the sealing scope is not one kubeseal understands.
	ErrInvalidScope = errors.New("invalid sealing scope")
)

// Configuration errors indicate a malformed defaults file.
var (
	// ErrConfigInvalid indicates the config file exists but cannot be decoded.
	ErrConfigInvalid = errors.New("config file is invalid")
)
