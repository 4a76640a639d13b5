package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"catalog-app/config"
	"catalog-app/database"
	authapi "catalog-app/internal/api/auth"
	categoriesapi "catalog-app/internal/api/categories"
	worksapi "catalog-app/internal/api/works"
	routes "catalog-app/internal/app/http"
	"catalog-app/internal/app/http/middleware"
	"catalog-app/internal/catalog"
	"catalog-app/internal/imaging"
	"catalog-app/internal/logger"
	"catalog-app/internal/remote"
	"catalog-app/internal/remote/memory"
	"catalog-app/internal/remote/postgres"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var Command = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog HTTP server",
	Long: `Starts the HTTP API and keeps the local catalog subscribed to the remote store.
Configuration is read from the environment and an optional .env file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, dotenv, err := config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		log := logger.New(cfg.LogLevel, cfg.LogFormat)
		if !dotenv {
			log.Debug().Msg("no .env file, using the environment only")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		backend, err := openBackend(cfg, log)
		if err != nil {
			return err
		}
		return Run(ctx, cfg, backend, log)
	},
}

func openBackend(cfg *config.Config, log zerolog.Logger) (remote.Backend, error) {
	if cfg.Store == config.StoreMemory {
		log.Warn().Msg("using the in-memory store; data is lost on exit")
		return memory.New(), nil
	}

	db, err := database.Open(cfg.DBURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	log.Info().Msg("database ready")
	return postgres.New(db, cfg.DBURL), nil
}

// Run serves HTTP and keeps the catalog subscribed until ctx is done or either side fails.
func Run(ctx context.Context, cfg *config.Config, backend remote.Backend, log zerolog.Logger) error {
	cat, engine := Build(cfg, backend, log)

	g, ctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		// open event streams end with the server
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g.Go(func() error {
		return cat.Serve(ctx, cfg.ResubscribeDelay)
	})
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	log.Info().Err(err).Msg("stopped")
	return err
}

// Build wires the catalog core and the gin engine over backend.
func Build(cfg *config.Config, backend remote.Backend, log zerolog.Logger) (*catalog.Catalog, *gin.Engine) {
	store := catalog.NewStore()
	watcher := catalog.NewWatcher(backend, backend, backend, cfg.SnapshotLimit)
	gateway := catalog.NewGateway(backend, backend)
	cat := catalog.New(watcher, store, log)

	pipeline := &imaging.Pipeline{
		MaxWidth:  cfg.ImageMaxWidth,
		Quality:   cfg.ImageQuality,
		MaxPixels: cfg.ImageMaxPixels,
	}

	works := worksapi.NewHandler(store, gateway, pipeline, log)
	works.PageSize = cfg.PageSize
	works.MaxUploadSize = cfg.MaxUploadSize
	works.WhatsApp = cfg.WhatsAppNumber

	if !cfg.AdminConfigured() {
		log.Warn().Msg("ADMIN_EMAIL or ADMIN_PASSWORD_HASH not set; admin login disabled")
	}

	if !strings.EqualFold(cfg.LogLevel, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadSize
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	r.Use(cors.New(corsConfig(cfg.CORSOrigin)))

	routes.RegisterRoutes(r, routes.Handlers{
		Auth: &authapi.Handler{
			Email:        cfg.AdminEmail,
			PasswordHash: cfg.AdminPasswordHash,
			Secret:       cfg.JWTSecret,
		},
		Works:      works,
		Categories: categoriesapi.NewHandler(store, gateway, log),
		JWTSecret:  cfg.JWTSecret,
	})
	return cat, r
}

func corsConfig(origin string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	var origins []string
	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
