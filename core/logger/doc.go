// Package logger provides a structured logging facility based on Zap.
//
// The debug level selects zap's development preset (ISO8601 timestamps,
// stack traces); any other level selects the production preset at that level.
// Format chooses console or json encoding.
//
// WithRun tags every entry of a reconciliation run with its run_id so the
// load, match, export and persist steps of one run can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	l := logger.WithRun(log, result.RunID)
//	l.Info("reconciliation finished", zap.Int("records", n))
package logger
