// Package configs resolves envseal's run configuration.
//
// Settings are built once per run from three layers, highest precedence
// first:
//
//  1. Flags explicitly passed on the command line
//  2. The optional TOML defaults file (.envseal.toml by default)
//  3. DefaultSettings
//
// A defaults file looks like:
//
//	name = "payments-env"
//	namespace = "payments"
//	controller_namespace = "sealed-secrets"
//	scope = "namespace-wide"
package configs
