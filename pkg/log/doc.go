// Package log exposes the logging abstraction used by ballchaser components.
//
// Embedders either pass a zerolog logger through the adapter:
//
//	logger := log.NewZerologLogger(zerolog.New(os.Stderr))
//
// or implement Logger themselves:
//
//	type MyLogger struct { ... }
//
//	func (l *MyLogger) Debug(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Info(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Warn(msg string, fields ...log.Field) { ... }
//	func (l *MyLogger) Error(msg string, fields ...log.Field) { ... }
package log
