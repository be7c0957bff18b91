// Package envfile parses dotenv-style files into an ordered set of
// base64-encoded values ready to be placed in a Kubernetes Secret.
//
// Each non-empty, non-comment line is split on its first '='. The key is
// trimmed and the value is split into shell words with POSIX quoting rules.
// Only the first word is kept:
//
//	FOO=bar baz     -> "bar"
//	FOO="bar baz"   -> "bar baz"
//	FOO=            -> ""
//
// Dropping the remaining words is long-standing behavior and is kept
// as-is; Env.Truncated reports which keys were affected.
package envfile
