// Package mcp exposes the ingestion core over the Model Context
// Protocol: the run_ingestion, list_sources and list_runs tools plus
// the packmule:// run-history resources.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// serverVersion tracks the Packmule MCP surface, independent of the
// CLI build version.
const serverVersion = "0.1.0"

// Server bridges the driving ports onto an MCP session.
type Server struct {
	ports *Ports
	inner *mcp.Server
}

// NewServer wires ports into a ready-to-run MCP server. Ingestion is
// mandatory; tools needing an absent optional port report
// unavailability per call.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("mcp ports: %w", err)
	}

	s := &Server{
		ports: ports,
		inner: mcp.NewServer(&mcp.Implementation{
			Name:    "packmule",
			Version: serverVersion,
		}, nil),
	}
	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves MCP over stdio until ctx is cancelled or the transport
// fails.
func (s *Server) Run(ctx context.Context) error {
	return s.inner.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr. Cancelling ctx
// shuts the listener down and returns nil.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr: addr,
		Handler: mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
			return s.inner
		}, nil),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := context.AfterFunc(ctx, func() {
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	})
	defer stop()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
