package mcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/view"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

// Runner coordinates MCP server startup.
type Runner struct {
	Engine    *app.Engine
	Projector view.Projector
	Logger    *log.Logger
	Name      string
	Version   string

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// Run starts the Model Context Protocol server using stdio transport.
func Run(ctx context.Context, e *app.Engine) error {
	r := Runner{
		Engine:    e,
		Name:      "todo",
		Version:   "dev",
		Transport: TransportStdio,
	}
	return r.Do(ctx)
}

// RunHTTP starts the MCP server over HTTP at the provided address.
func RunHTTP(ctx context.Context, e *app.Engine, addr string) error {
	r := Runner{
		Engine:           e,
		Name:             "todo",
		Version:          "dev",
		Transport:        TransportHTTP,
		HTTPListenAddr:   addr,
		HTTPEndpointPath: "/mcp",
	}
	return r.Do(ctx)
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Engine == nil {
		return errors.New("mcp runner requires an engine")
	}
	name := r.Name
	if name == "" {
		name = "todo"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := NewServer(name, version, &Service{Engine: r.Engine, Projector: r.Projector})
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv, logger)
	case TransportStdio:
		logger.Debug("serving MCP over stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

// NewServer builds an MCP server exposing svc as tools and resources.
func NewServer(name, version string, svc *Service) *server.MCPServer {
	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Read and change the todo task list via MCP."),
		server.WithRecovery(),
	)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer, logger *log.Logger) error {
	if (r.HTTPServerCert != "" && r.HTTPServerKey == "") || (r.HTTPServerCert == "" && r.HTTPServerKey != "") {
		return errors.New("both http tls cert and key must be provided")
	}

	handler := server.NewStreamableHTTPServer(srv)

	path := r.HTTPEndpointPath
	if path == "" {
		path = "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:8080"
	}

	mux := http.NewServeMux()
	mux.Handle(path, handler)

	httpSrv := &http.Server{
		Handler: mux,
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	logger.Info("MCP HTTP server listening", "addr", ln.Addr().String(), "path", path)
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	if ctx != nil {
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()
	}

	if r.HTTPServerCert != "" && r.HTTPServerKey != "" {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
