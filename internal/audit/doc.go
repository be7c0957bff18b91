// Package audit provides an optional audit trail for envseal runs.
//
// When enabled with --audit-log, every successful seal appends one JSON
// object to the given file, recording which keys were sealed for which
// Secret and controller. Secret values are never written.
//
//	{"ts":"2026-10-18T09:12:44.120031Z","run_id":"…","op":"seal","name":"mysecret",…}
//
// # Failure Handling
//
// Audit logging is best-effort. Log returns its error so the CLI can warn,
// but a failure never undoes or fails the seal itself.
package audit
