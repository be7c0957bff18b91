// Package kubeseal runs the external kubeseal binary to turn a Secret
// manifest into a SealedSecret.
//
// The binary is spawned directly with an explicit argument list; no shell is
// involved, so secret names and controller coordinates are never
// interpolated into a command string.
package kubeseal
