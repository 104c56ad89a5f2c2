// Package cli constructs the drift command-line interface. It turns the audit
// command into the root command and layers persistent flags, Viper-backed
// configuration, and zap logging on top of it.
package cli
