// Package logging builds the slog loggers used by the scriptline commands.
//
// Libraries never construct their own handlers; they receive a *slog.Logger
// from the caller and treat nil as "discard".
package logging
