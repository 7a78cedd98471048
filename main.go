// Command skribble-server starts the Arabic Skribbl game server.
//
// It supports two modes:
//  1. "server" (default) – runs the HTTP server exposing the REST API, the
//     WebSocket game transport, and an /mcp HTTP endpoint
//  2. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP
//     API if none is available
//
// Flags control host/port, config directory, debug logging, and optional
// ngrok tunneling for easy external access during development.
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
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"

	"github.com/alaasumrain/skribble-arabic/api"
	"github.com/alaasumrain/skribble-arabic/game/config"
	"github.com/alaasumrain/skribble-arabic/game/registry"
	"github.com/alaasumrain/skribble-arabic/game/service"
	"github.com/alaasumrain/skribble-arabic/transport/mcp"
	"github.com/alaasumrain/skribble-arabic/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Arabic Skribbl Server"
)

// app holds the wired service graph. The hub doubles as the room emitter, so
// it is constructed first and bound to the service afterwards.
type app struct {
	hub      *websocket.Hub
	registry *registry.Registry
	configs  *config.Manager
	service  service.GameService
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("error loading .env file")
		}
	} else {
		log.Info().Msg("loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "skribble-server",
		Usage:   "real-time Arabic drawing-and-guessing game server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   3002,
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:  "host",
				Value: "0.0.0.0",
				Usage: "HTTP server host",
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing game configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:    "ngrok",
				Usage:   "enable ngrok tunnel",
				Sources: cli.EnvVars("NGROK_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "ngrok-auth",
				Usage:   "ngrok auth token",
				Sources: cli.EnvVars("NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "ngrok-domain",
				Usage:   "custom ngrok domain (optional)",
				Sources: cli.EnvVars("NGROK_DOMAIN"),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			setupLogging(c.Bool("debug"))
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a, err := initializeServices(c.String("config-dir"))
			if err != nil {
				return err
			}
			return runHTTPServer(a, c)
		},
		Commands: []*cli.Command{
			{
				Name:    "stdio-mcp",
				Aliases: []string{"mcp-stdio", "mcp"},
				Usage:   "run an MCP stdio server with an internal HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					a, err := initializeServices(c.String("config-dir"))
					if err != nil {
						return err
					}
					return runStdioMCPWithInternalServer(a, int(c.Int("port")))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func setupLogging(debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// initializeServices wires the hub, registry, config manager, and game
// service. The hub is the emitter every room broadcasts through, so it exists
// before the service and is bound to it afterwards.
func initializeServices(configDir string) (*app, error) {
	configManager, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	hub := websocket.NewHub()
	reg := registry.New(hub)
	gameService := service.NewGameService(reg, configManager, hub)
	hub.Bind(gameService)

	return &app{
		hub:      hub,
		registry: reg,
		configs:  configManager,
		service:  gameService,
	}, nil
}

// runHTTPServer starts the HTTP server with REST API, WebSocket hub, and an
// /mcp proxy endpoint. If ngrok is enabled it also provisions a public
// tunnel.
func runHTTPServer(a *app, c *cli.Command) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.hub.Run(ctx)

	apiServer := api.NewServer(a.service, a.configs, a.hub)

	addr := fmt.Sprintf("%s:%d", c.String("host"), int(c.Int("port")))

	// The MCP endpoint is a thin proxy over our own REST API.
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", mcpHandler(mcpClient))

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		log.Info().Str("addr", addr).Msg("HTTP server listening")
		log.Info().Msgf("REST API: http://%s/api", addr)
		log.Info().Msgf("WebSocket: ws://%s/ws", addr)
		log.Info().Msgf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	if c.Bool("ngrok") {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runNgrokTunnel(ctx, mainRouter, c.String("ngrok-auth"), c.String("ngrok-domain"))
		}()
	}

	sig := <-stop
	log.Info().Str("signal", sig.String()).Msg("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Stop every room's turn timer before exiting.
	a.registry.CloseAll()

	wg.Wait()
	log.Info().Msg("server stopped")
	return nil
}

// mcpHandler serves MCP-over-HTTP: each POST body is one JSON-RPC message
// handed to the MCP server.
func mcpHandler(mcpClient *mcp.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
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
	}
}

// runNgrokTunnel exposes the main router through an ngrok tunnel. Development
// convenience only.
func runNgrokTunnel(ctx context.Context, handler http.Handler, authToken, domain string) {
	if authToken == "" {
		log.Warn().Msg("ngrok enabled but no auth token provided (use --ngrok-auth or NGROK_AUTHTOKEN)")
		return
	}

	log.Info().Msg("starting ngrok tunnel")

	var tunnel ngrokConfig.Tunnel
	if domain != "" {
		tunnel = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		log.Info().Str("domain", domain).Msg("using custom ngrok domain")
	} else {
		tunnel = ngrokConfig.HTTPEndpoint()
	}

	tun, err := ngrok.Listen(ctx, tunnel, ngrok.WithAuthtoken(authToken))
	if err != nil {
		log.Error().Err(err).Msg("failed to start ngrok tunnel")
		return
	}
	defer func() {
		if err := tun.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close ngrok tunnel")
		}
	}()

	log.Info().Str("url", tun.URL()).Msg("ngrok tunnel established")

	if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("ngrok server error")
	}
	log.Info().Msg("ngrok tunnel closed")
}

// runStdioMCPWithInternalServer runs an MCP stdio server. It tries to reuse
// an external API on the configured port; if unavailable, it starts a minimal
// internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(a *app, port int) error {
	var baseURL string

	externalURL := fmt.Sprintf("http://localhost:%d", port)
	log.Info().Str("url", externalURL).Msg("checking for external API server")

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Info().Str("url", externalURL).Msg("external API server found, using it for MCP")
		baseURL = externalURL
	} else {
		log.Info().Msg("no external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("failed to get available port: %w", err)
		}

		internalAddr := listener.Addr().String()
		log.Info().Str("addr", internalAddr).Msg("starting internal HTTP server for MCP stdio")

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go a.hub.Run(ctx)

		apiServer := api.NewServer(a.service, a.configs, a.hub)
		httpServer := &http.Server{Handler: apiServer}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("internal HTTP server error")
			}
		}()

		// Give the listener a moment to accept.
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	log.Info().Str("api", baseURL).Msg("MCP stdio server ready")
	if err := mcpserver.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		return fmt.Errorf("MCP stdio server error: %w", err)
	}
	return nil
}
