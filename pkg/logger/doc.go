// Package logger builds configured slog.Logger instances for the service.
//
// It supports JSON output for production log aggregation and text output
// for local development, with static service attributes applied to every
// record. Attribute helpers keep log field names consistent across
// packages.
package logger
