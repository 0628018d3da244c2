// Package logging provides structured logging for yeelan.
//
// This package wraps zap with the handful of patterns the tool uses.
// By default it is completely silent so CLI output stays clean; set
// YEELAN_LOG_LEVEL to "debug", "info", "warn" or "error" to see what
// the discovery loop is doing:
//
//	YEELAN_LOG_LEVEL=debug yeelan scan
//
// All log functions use structured fields:
//
//	logging.Debug("light discovered",
//	    zap.String("id", device.ID),
//	    zap.String("model", device.Model),
//	)
//
// LogDatagram adds hex and ascii dumps of raw datagrams at debug level,
// which is the main tool for diagnosing malformed advertisements.
//
// Initialize once at startup and flush on exit:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// All logging functions are safe for concurrent use.
package logging
