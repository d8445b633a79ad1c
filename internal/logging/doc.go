// Package logging builds the shared slog logger from configuration.
package logging
