// Package main is coldb, the interactive client. It connects to a running
// coldbd over its Unix domain socket and is a thin line-reader over the
// wire protocol, generalizing the teacher's cmd/smf/main.go
// root-command-with-subcommands layout down to a single persistent
// connection instead of a one-shot CLI invocation.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"coldb/internal/wire"
)

var loadCommandRe = regexp.MustCompile(`^load\("[a-zA-Z0-9_./]+"\)$`)

type rootFlags struct {
	socketPath string
}

func main() {
	flags := &rootFlags{}
	rootCmd := &cobra.Command{
		Use:   "coldb",
		Short: "Interactive client for coldbd",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runREPL(flags.socketPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.socketPath, "socket", "/tmp/coldb.sock", "Path to the server's Unix domain socket")
	rootCmd.AddCommand(loadCmd(flags))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Stream a local load file into the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runLoad(flags.socketPath, args[0])
		},
	}
}

func runREPL(socketPath string) error {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("coldb: connect to %q: %w", socketPath, err)
	}
	defer conn.Close()

	prefix := ""
	if isInteractive() {
		prefix = "coldb > "
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prefix)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		if loadCommandRe.MatchString(line) {
			if err := sendLoadCommand(conn, line); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			continue
		}

		if err := wire.WriteFrame(conn, wire.Frame{Status: wire.StatusOKWaitForResponse, Payload: line}); err != nil {
			return fmt.Errorf("coldb: send: %w", err)
		}
		reply, err := wire.ReadFrame(conn)
		if err != nil {
			return fmt.Errorf("coldb: receive: %w", err)
		}
		if reply.Payload == wire.ShutdownPayload {
			fmt.Println("server is shutting down")
			return nil
		}
		if reply.Payload != "" {
			fmt.Println(reply.Payload)
		}
	}
	return nil
}

// sendLoadCommand sends the literal load("file") line, streams the named
// local file's lines as the LOAD mini-protocol body, then waits for the
// server's single reply covering the whole load, matching
// src/client.c's process_load_command.
func sendLoadCommand(conn net.Conn, line string) error {
	filename := strings.TrimSuffix(strings.TrimPrefix(line, `load("`), `")`)
	if err := wire.WriteFrame(conn, wire.Frame{Status: wire.StatusOKWaitForResponse, Payload: line}); err != nil {
		return fmt.Errorf("coldb: send: %w", err)
	}
	if err := streamFile(conn, filename); err != nil {
		return err
	}
	reply, err := wire.ReadFrame(conn)
	if err != nil {
		return fmt.Errorf("coldb: receive: %w", err)
	}
	if reply.Payload != "" {
		fmt.Println(reply.Payload)
	}
	return nil
}

func runLoad(socketPath, filename string) error {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return fmt.Errorf("coldb: connect to %q: %w", socketPath, err)
	}
	defer conn.Close()
	return sendLoadCommand(conn, fmt.Sprintf(`load("%s")`, filename))
}

func streamFile(conn net.Conn, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("coldb: open %q: %w", filename, err)
	}
	defer f.Close()
	return wire.StreamLoadFile(conn, f)
}

func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
