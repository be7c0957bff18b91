// Package logger provides leveled logging for envseal.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is written to stderr with colored semantic prefixes so that
// sealed YAML echoed on stdout can be piped elsewhere.
//
// # Verbosity Levels
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details and errors
//
// Without flags, only WarnfAlways output is shown.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Parsed %d keys", count)
package logger
