package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Status is the single byte of server-side outcome a Frame carries,
// coarser than engine.Code (spec.md §7): the wire only needs to tell the
// client "keep waiting for a payload" from "done", not the full error
// taxonomy, which travels as the payload text itself on failure.
type Status uint8

const (
	StatusOK Status = iota
	StatusOKWaitForResponse
	StatusError
)

// ShutdownPayload is the well-known payload spec.md §6 says the server
// sends on SHUTDOWN; the client recognizes it and exits rather than
// waiting for a further response.
const ShutdownPayload = "SHUTDOWN"

// LoadEOF is the sentinel payload that ends a LOAD mini-protocol stream.
const LoadEOF = "EOF"

// Frame is one message: a fixed header (status, payload length) plus its
// payload, matching spec.md §6's wire framing.
type Frame struct {
	Status  Status
	Payload string
}

// WriteFrame writes header then payload, in that order, mirroring
// src/client.c's send_to_server (two separate sends, header first).
func WriteFrame(w io.Writer, f Frame) error {
	var header [5]byte
	header[0] = byte(f.Status)
	binary.LittleEndian.PutUint32(header[1:], uint32(len(f.Payload)))
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("wire: write header: %w", err)
	}
	if len(f.Payload) == 0 {
		return nil
	}
	if _, err := io.WriteString(w, f.Payload); err != nil {
		return fmt.Errorf("wire: write payload: %w", err)
	}
	return nil
}

// ReadFrame reads one header then its payload.
func ReadFrame(r io.Reader) (Frame, error) {
	var header [5]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Frame{}, fmt.Errorf("wire: read header: %w", err)
	}
	status := Status(header[0])
	length := binary.LittleEndian.Uint32(header[1:])

	if length == 0 {
		return Frame{Status: status}, nil
	}
	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Frame{}, fmt.Errorf("wire: read payload: %w", err)
	}
	return Frame{Status: status, Payload: string(payload)}, nil
}
