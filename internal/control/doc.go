// Package control opens and drives the per-device control stream.
//
// A discovered light's Location is a plain TCP endpoint speaking the
// Yeelight command protocol: one JSON object per line, CRLF-terminated,
// with an increasing request ID. This package holds the connection
// handle and the small command surface built on it (power, brightness,
// toggle). It is deliberately minimal: no response parsing, no
// connection pooling, no reconnection — a failed connection is reported
// as a *ConnError and leaves discovered device records untouched.
//
// Connections are opened lazily and explicitly, never as part of
// discovery:
//
//	conn, err := device.Connect()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//	if err := conn.SetPower(true); err != nil {
//	    log.Fatal(err)
//	}
package control
