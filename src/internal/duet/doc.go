// Package duet provides a client for querying and commanding Duet 3D printers
// over HTTP.
//
// Duet boards speak one of two incompatible HTTP APIs: the legacy RRF2
// interface (/rr_connect, /rr_status, /rr_gcode, /rr_download) and the RRF3
// interface served by the Duet Software Framework (/machine/status,
// /machine/code, /machine/file). The client detects the generation once, when
// it is created, and routes every call to the right endpoint and response
// schema.
//
// # Features
//
//   - Generation detection with a three-valued result (RRF2, RRF3, unknown)
//   - Axis coordinates, tool and extruder counts, machine status
//   - G-code dispatch with the refused HTTP status preserved in the error
//   - File download split into lines
//   - Endstop and axis-limit reset helpers driven by /sys/config.g
//
// # Detection
//
// RRF2 is tried first: the client logs in with the configured password and
// requires a "coords" object from /rr_status?type=1. Any failure (transport
// error, timeout, non-2xx status, invalid JSON, missing field) moves on to
// /machine/status, which must return a "result" object. When both probes fail
// the client keeps GenerationUnknown, an error is logged, and every query
// returns errors.ErrUnsupportedFirmware.
//
// Responses are decoded into typed documents and validated; a document that
// lacks a field the query needs is reported as errors.ErrMalformedResponse.
//
// # Example Usage
//
//	client := duet.NewClient("http://192.168.1.50", "reprap", nil)
//	coords, err := client.GetCoordinates()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("X=%.2f Y=%.2f Z=%.2f\n", coords["X"], coords["Y"], coords["Z"])
//
//	if err := client.SendGCode("G28"); err != nil {
//	    fmt.Println("homing refused with status", duet.StatusCode(err))
//	}
//
// RRF3 password authentication is not supported.
package duet
