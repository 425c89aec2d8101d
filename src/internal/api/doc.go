// Package api provides the local REST bridge for duetctl.
//
// The bridge exposes every configured printer over HTTP so that scripts and
// dashboards can query and command printers without speaking either Duet API
// generation themselves. It provides:
//   - Printer listing with the detected firmware generation
//   - Coordinates, status, tool and extruder counts
//   - G-code dispatch and file download
//   - Endstop and axis-limit reset helpers
//
// Calls on one printer are serialized; different printers are served
// independently.
//
// # Response Format
//
// All successful responses wrap data in a "data" field:
//
//	{
//	  "data": { /* response payload */ }
//	}
//
// Error responses use the following format:
//
//	{
//	  "error": {
//	    "code": "command_rejected",
//	    "message": "Human-readable error message",
//	    "details": { "status_code": 503 }
//	  }
//	}
//
// Printer failures are reported as 502 Bad Gateway, and a printer whose
// firmware generation was not detected as 503 Service Unavailable. A reset
// helper whose config lines were partly rejected still answers 200 and lists
// the rejected lines.
package api
