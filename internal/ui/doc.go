// Package ui provides semantic text formatting for CLI output.
//
// Formatters render colored text when the terminal supports it. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, quotes) are used instead.
//
//	ui.Code.Sprint("kubeseal --fetch-cert")
//	ui.Path.Sprint("sealed-secret.yaml")
//	ui.Highlight.Sprint("mysecret")
//	ui.FailureMessage("kubeseal not found", "Install kubeseal")
package ui
