package server

import (
	"fmt"
	"net"
	"strings"

	"coldb/internal/catalog"
	"coldb/internal/wire"
)

// handleLoad drives the server side of the LOAD mini-protocol (spec.md
// §6): a header naming the columns to fill, one CSV row per message, a
// terminating EOF, then cluster_table on the table those columns belong
// to. Grounded on src/server.c's LOAD handling paired with
// src/client.c's process_load_command on the other end of the wire.
func (s *Server) handleLoad(conn net.Conn) error {
	headerFrame, err := wire.ReadFrame(conn)
	if err != nil {
		return fmt.Errorf("server: load: read header: %w", err)
	}
	header := wire.ParseLoadHeader(headerFrame.Payload)
	if len(header.ColumnNames) == 0 {
		return fmt.Errorf("server: load: empty header")
	}

	dbName := strings.SplitN(header.ColumnNames[0], ".", 2)[0]
	db, err := s.resources.Get(dbName)
	if err != nil {
		return fmt.Errorf("server: load: %w", err)
	}

	tbl, cols, err := wire.ResolveLoadColumns(db, header)
	if err != nil {
		return err
	}

	for {
		rowFrame, err := wire.ReadFrame(conn)
		if err != nil {
			return fmt.Errorf("server: load: read row: %w", err)
		}
		if rowFrame.Payload == wire.LoadEOF {
			break
		}
		row, err := wire.ParseLoadRow(rowFrame.Payload)
		if err != nil {
			return err
		}
		if err := wire.IngestRow(tbl, cols, row); err != nil {
			return err
		}
	}

	return catalog.Cluster(tbl)
}
