// Package log provides simple leveled logging for duetctl.
//
// Messages carry a colored level prefix: DEBUG, INFO, WARN and ERROR. DEBUG is
// printed only in verbose mode. ERROR always goes to the error stream, which is
// where the printer client reports failed detection and rejected commands.
//
// # Example Usage
//
//	log.Infof("Connected to %s (%s)", client.BaseURL(), client.Generation())
//	log.Errorf("%s does not appear to be a RRF2 or RRF3 printer", baseURL)
//
// Enabling verbose mode for request traces:
//
//	log.SetVerbose(true)
//	log.Debugf("GET %s", url)
//
// The CLI calls SetForceStdErr(true) so that stdout carries only command
// output. Tests redirect both streams with SetOutput.
//
// The package uses global state for simplicity; writes are serialized so it
// can be used from the REST bridge's concurrent handlers.
package log
