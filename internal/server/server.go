package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"go.uber.org/zap"

	"coldb/internal/engine"
	"coldb/internal/persist"
	"coldb/internal/planner"
	"coldb/internal/pool"
	"coldb/internal/wire"
)

// Server owns the listening socket and the process-wide resource pool.
type Server struct {
	listener  net.Listener
	resources *pool.ResourcePool
	dataDir   string
	logger    *zap.Logger
}

// New binds the listening socket at socketPath, removing any stale socket
// file left behind by a previous run (src/server.c's setup_server does the
// same unlink-before-bind).
func New(socketPath, dataDir string, resources *pool.ResourcePool, logger *zap.Logger) (*Server, error) {
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("server: remove stale socket %q: %w", socketPath, err)
	}
	ln, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("server: listen on %q: %w", socketPath, err)
	}
	return &Server{listener: ln, resources: resources, dataDir: dataDir, logger: logger}, nil
}

// Serve accepts one connection at a time and runs it to completion before
// accepting the next, per spec.md §5's single-threaded scheduling model.
// It returns when a client issues SHUTDOWN or the listener is closed.
func (s *Server) Serve() error {
	defer s.listener.Close()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("server: accept: %w", err)
		}

		shutdown := s.handleSession(conn)
		if shutdown {
			return nil
		}
	}
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	return s.listener.Close()
}

// handleSession runs one client connection to completion. It returns true
// if the client issued SHUTDOWN, signaling Serve to stop accepting.
func (s *Server) handleSession(conn net.Conn) bool {
	log := s.logger.Named("session")
	log.Info("client connected")
	defer func() {
		conn.Close()
		log.Info("client disconnected")
	}()

	vars := pool.NewVariablePool()
	p := planner.New(s.resources)

	for {
		frame, err := wire.ReadFrame(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn("read frame failed", zap.Error(err))
			}
			return false
		}

		// PRINT is the one operator that produces output of its own; buffer
		// it instead of handing Materialize the raw connection, so it never
		// lands on the wire outside a single framed reply (spec.md §6: every
		// server->client message is exactly one header-plus-payload frame).
		var printed bytes.Buffer
		op, err := p.Prepare(vars, &printed, frame.Payload)
		if err != nil {
			s.reply(conn, log, wire.Frame{Status: wire.StatusError, Payload: err.Error()})
			continue
		}
		if op == nil {
			// Administrative command (CREATE already mutated the catalog
			// directly inside Prepare).
			s.reply(conn, log, wire.Frame{Status: wire.StatusOK})
			continue
		}

		switch op.Kind {
		case engine.OpShutdown:
			s.flushAll(log)
			s.reply(conn, log, wire.Frame{Status: wire.StatusOK, Payload: wire.ShutdownPayload})
			return true

		case engine.OpLoad:
			if err := s.handleLoad(conn); err != nil {
				s.reply(conn, log, wire.Frame{Status: wire.StatusError, Payload: err.Error()})
				continue
			}
			s.reply(conn, log, wire.Frame{Status: wire.StatusOK})

		case engine.OpPrint:
			if err := engine.Dispatch(op, vars); err != nil {
				s.reply(conn, log, wire.Frame{Status: wire.StatusError, Payload: err.Error()})
				continue
			}
			s.reply(conn, log, wire.Frame{Status: wire.StatusOK, Payload: printed.String()})

		default:
			if err := engine.Dispatch(op, vars); err != nil {
				s.reply(conn, log, wire.Frame{Status: wire.StatusError, Payload: err.Error()})
				continue
			}
			s.reply(conn, log, wire.Frame{Status: wire.StatusOK})
		}
	}
}

func (s *Server) reply(conn net.Conn, log *zap.Logger, f wire.Frame) {
	if err := wire.WriteFrame(conn, f); err != nil {
		log.Warn("write frame failed", zap.Error(err))
	}
}

// flushAll syncs every database in the resource pool to disk, then rewrites
// the system catalog. There is no dirty tracking: every SHUTDOWN writes all
// databases, whether or not anything changed. A sync error is logged and
// the remaining databases are still written.
func (s *Server) flushAll(log *zap.Logger) {
	dbs := s.resources.Databases()
	entries := make([]persist.DatabaseEntry, len(dbs))
	for i, db := range dbs {
		if err := persist.SyncDatabase(s.dataDir, db); err != nil {
			log.Error("sync database failed", zap.String("database", db.Name), zap.Error(err))
		}
		entries[i] = persist.DatabaseEntry{Name: db.Name, TableCount: len(db.Tables())}
	}
	if err := persist.WriteSystemCatalog(s.dataDir, &persist.SystemCatalog{Databases: entries}); err != nil {
		log.Error("write system catalog failed", zap.Error(err))
	}
}
