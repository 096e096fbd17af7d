// Package wire implements the client↔server message framing spec.md §6
// defines: a fixed-size header (status, payload length) followed by that
// many bytes of UTF-8 payload, plus the LOAD bulk-ingest mini-protocol
// (a column-name header line, one CSV row per message, a terminating "EOF"
// payload) and the well-known "SHUTDOWN" payload the client watches for.
//
// Grounded on original_source/src/server.c and src/client.c's send/recv
// pairing (message header sent separately from its payload, in that
// order), reimplemented with encoding/binary over net.Conn instead of a
// raw C struct blasted across a socket.
package wire
