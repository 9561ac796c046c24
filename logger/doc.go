// Package logger provides structured logging for promptserve using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers carrying request and run identifiers.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.GetGlobalLogger().WithComponent("chain")
//	log.Info("pipeline invoked", logger.Fields("route", "essay", "run_id", id))
package logger
