// Package logger provides structured logging for slikit services
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("sli")
//	log.Info("pipeline started", logger.Fields("sli", "checkout-latency"))
package logger
