// Command boardwalk starts the multiplayer property-trading game server.
//
// It supports two modes:
//  1. "serve" (default) – runs the TCP game listener plus the HTTP
//     operator surface (REST API, WebSocket event feed, /mcp endpoint)
//  2. "mcp" – runs an MCP stdio client proxying a running server's API
//
// Flags control listen addresses, the TLS certificate pair, the board
// layout, and debug logging. Every flag can also be set through a
// BOARDWALK_* environment variable or a .env file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/castlebay/boardwalk/api"
	"github.com/castlebay/boardwalk/game/config"
	"github.com/castlebay/boardwalk/game/service"
	"github.com/castlebay/boardwalk/game/session"
	"github.com/castlebay/boardwalk/transport/mcp"
	"github.com/castlebay/boardwalk/transport/tcpserver"
	"github.com/castlebay/boardwalk/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Boardwalk Game Server"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	cmd := &cli.Command{
		Name:    "boardwalk",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   ":7777",
				Usage:   "game listener address",
				Sources: cli.EnvVars("BOARDWALK_ADDR"),
			},
			&cli.StringFlag{
				Name:    "http-addr",
				Value:   ":8080",
				Usage:   "operator API listen address",
				Sources: cli.EnvVars("BOARDWALK_HTTP_ADDR"),
			},
			&cli.StringFlag{
				Name:    "tls-cert",
				Usage:   "path to the TLS certificate for the game listener",
				Sources: cli.EnvVars("BOARDWALK_TLS_CERT"),
			},
			&cli.StringFlag{
				Name:    "tls-key",
				Usage:   "path to the TLS private key for the game listener",
				Sources: cli.EnvVars("BOARDWALK_TLS_KEY"),
			},
			&cli.StringFlag{
				Name:    "board-dir",
				Usage:   "directory with extra board layout files",
				Sources: cli.EnvVars("BOARDWALK_BOARD_DIR"),
			},
			&cli.StringFlag{
				Name:    "board",
				Value:   config.DefaultLayout,
				Usage:   "board layout new games start with",
				Sources: cli.EnvVars("BOARDWALK_BOARD"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("BOARDWALK_DEBUG"),
			},
		},
		Action: runServer,
		Commands: []*cli.Command{
			{
				Name:  "mcp",
				Usage: "run an MCP stdio client against a server's operator API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "api-url",
						Value:   "http://localhost:8080",
						Usage:   "base URL of the operator API",
						Sources: cli.EnvVars("BOARDWALK_API_URL"),
					},
				},
				Action: runStdioMCP,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	if debug {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		return logger.Sugar(), nil
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

// runServer wires the registry, router, and both listeners, then blocks
// until a shutdown signal arrives.
func runServer(ctx context.Context, cmd *cli.Command) error {
	logger, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	logger.Infow("starting", "app", AppName, "version", Version)

	layouts, err := config.NewManager(cmd.String("board-dir"))
	if err != nil {
		return fmt.Errorf("failed to create layout manager: %w", err)
	}
	newBoard, err := layouts.BoardFactory(cmd.String("board"))
	if err != nil {
		return fmt.Errorf("failed to resolve board layout %q: %w", cmd.String("board"), err)
	}

	registry := session.NewManagerWithLayout(newBoard)
	dispatcher := session.NewDispatcher(registry, logger)
	router := service.NewRouter(registry, dispatcher, logger)

	hub := websocket.NewHub(logger)
	go hub.Run()
	router.AddSink(hub)

	// Game transport.
	gameServer := tcpserver.NewServer(registry, router, logger)
	gameErr := make(chan error, 1)
	certFile, keyFile := cmd.String("tls-cert"), cmd.String("tls-key")
	if certFile != "" && keyFile != "" {
		go func() {
			gameErr <- gameServer.ListenAndServeTLS(cmd.String("addr"), certFile, keyFile)
		}()
	} else {
		// Plain TCP is for local development only.
		logger.Warnw("no TLS certificate configured, game listener is unencrypted")
		ln, err := net.Listen("tcp", cmd.String("addr"))
		if err != nil {
			return fmt.Errorf("failed to bind game listener: %w", err)
		}
		go func() {
			gameErr <- gameServer.Serve(ln)
		}()
	}

	// Operator surface: REST API, event feed, and the /mcp endpoint.
	apiServer := api.NewServer(registry, layouts, hub, logger)
	mcpClient := mcp.NewClient(fmt.Sprintf("http://localhost%s", cmd.String("http-addr")))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         cmd.String("http-addr"),
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	httpErr := make(chan error, 1)
	go func() {
		logger.Infow("operator API listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			httpErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		logger.Infow("shutting down", "signal", sig.String())
	case err := <-gameErr:
		if err != nil {
			logger.Errorw("game listener failed", "error", err)
		}
	case err := <-httpErr:
		logger.Errorw("operator API failed", "error", err)
	}

	gameServer.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warnw("operator API shutdown error", "error", err)
	}

	logger.Infow("server stopped")
	return nil
}

// runStdioMCP runs the MCP stdio client against an already-running
// server's operator API.
func runStdioMCP(ctx context.Context, cmd *cli.Command) error {
	client := mcp.NewClient(cmd.String("api-url"))
	return mcpserver.ServeStdio(client.GetMCPServer())
}
