// Package logger provides a small factory around log/slog plus attribute
// helpers used across the SDK.
//
// Defaults are production-safe (JSON at info level); WithDevelopment
// switches to human-readable text at debug level. The SDK itself never
// logs above debug for recoverable conditions: restore failures and
// swallowed storage errors are diagnostics, not user-facing events.
//
//	log := logger.New(logger.WithDevelopment("studyhub"))
//	log.Debug("session restored", logger.UserID(user.ID))
package logger
