package fx

import (
	"log"

	"github.com/amityadav/searchclone/internal/config"
	"github.com/amityadav/searchclone/internal/core"
	"github.com/amityadav/searchclone/internal/serpapi"
	"go.uber.org/fx"
)

// ConfigModule provides application configuration
var ConfigModule = fx.Module("config",
	fx.Provide(config.Load),
)

// SerpAPIModule provides the SerpApi provider client
var SerpAPIModule = fx.Module("serpapi",
	fx.Provide(NewSerpAPIClient),
)

// CoreModule provides search business logic
var CoreModule = fx.Module("core",
	fx.Provide(NewSearchCore),
)

// NewSerpAPIClient creates the SerpApi client with the configured timeout
// and retry budget
func NewSerpAPIClient(cfg config.Config) *serpapi.Client {
	c := serpapi.NewClient(cfg.SerpAPIKey, cfg.SerpAPITimeout, cfg.SerpAPITries)
	log.Printf("[FX] SerpApi client initialized (timeout=%s, tries=%d)", cfg.SerpAPITimeout, cfg.SerpAPITries)
	return c
}

// NewSearchCore creates the search orchestration core
func NewSearchCore(client *serpapi.Client) *core.SearchCore {
	c := core.NewSearchCore(client)
	log.Printf("[FX] SearchCore initialized")
	return c
}
