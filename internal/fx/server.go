package fx

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/amityadav/searchclone/internal/config"
	"github.com/amityadav/searchclone/internal/core"
	"github.com/amityadav/searchclone/internal/server"
	"go.uber.org/fx"
)

// ServerModule starts the HTTP server
var ServerModule = fx.Module("server",
	fx.Invoke(StartServer),
)

// ServerParams groups dependencies for starting the HTTP server
type ServerParams struct {
	fx.In
	Lifecycle  fx.Lifecycle
	SearchCore *core.SearchCore
	Config     config.Config
}

// StartServer starts the HTTP server with lifecycle management
func StartServer(p ServerParams) {
	restHandler := server.CreateRESTHandler(server.Services{SearchCore: p.SearchCore})
	handler := server.CreateRecoveryHandler(
		server.CreateRequestLogHandler(
			server.CreateCORSHandler(restHandler, p.Config),
		),
	)

	srv := &http.Server{Addr: p.Config.HTTPAddr, Handler: handler}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("[FX] HTTP Server listening on %s", p.Config.HTTPAddr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("[FX] HTTP Server error: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Printf("[FX] Shutting down HTTP server...")
			return srv.Shutdown(ctx)
		},
	})
}
