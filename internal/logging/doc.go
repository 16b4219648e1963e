// Package logging builds the slog logger used by the command line tools.
package logging
