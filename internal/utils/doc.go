// Package utils exposes the ambient helpers shared by the drift command.
//
// ConfigurationLoader layers defaults, embedded configuration, an optional
// config file, and environment variables through Viper. LoggerFactory builds
// zap loggers that write to stderr in structured or console form.
package utils
