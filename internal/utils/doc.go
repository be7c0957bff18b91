// Package utils provides shared utility functions for envseal.
//
// # Filesystem Utilities
//
//   - FileExists: reports whether a regular file exists
//   - CopyFile: copies generated manifests out of the run directory
//
// # I/O Utilities
//
//   - ReadStdin: reads a piped env file when the source is "-"
//
// # String Utilities
//
//   - FormatPaths: formats file paths for human-readable output
//   - Plural: naive English pluralization for counts
//
// # Terminal Utilities
//
//   - IsTerminal, IsStderrTerminal: terminal detection for spinners
package utils
