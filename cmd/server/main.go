package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vitrina-solutions/storefront-service/internal/crypto"
	"github.com/vitrina-solutions/storefront-service/internal/mail"
	"github.com/vitrina-solutions/storefront-service/internal/model"
	"github.com/vitrina-solutions/storefront-service/internal/monitoring"
	"github.com/vitrina-solutions/storefront-service/internal/service"
	"github.com/vitrina-solutions/storefront-service/internal/store"
	"github.com/vitrina-solutions/storefront-service/internal/web"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		port        = flag.Int("port", 8080, "Port for the storefront HTTP server")
		metricsPort = flag.Int("metrics-port", 8081, "Port for health checks and metrics")
		dbHost      = flag.String("db-host", "localhost", "Database host")
		dbPort      = flag.Int("db-port", 5432, "Database port")
		dbUser      = flag.String("db-user", "admin", "Database user")
		dbPass      = flag.String("db-pass", "securepassword", "Database password")
		dbName      = flag.String("db-name", "storefront_registry", "Database name")
		redisAddr   = flag.String("redis-addr", "localhost:6379", "Redis address")
		baseDomain  = flag.String("base-domain", env("BASE_DOMAIN", "vitrina.app"), "Application base domain for subdomain resolution")
		devMode     = flag.Bool("dev", false, "Development mode: bypass the config cache on every read")
	)
	flag.Parse()

	if key := os.Getenv("PII_ENCRYPTION_KEY"); key != "" {
		if err := crypto.SetKey([]byte(key)); err != nil {
			log.Fatal().Err(err).Msg("Invalid PII encryption key")
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		*dbHost, *dbPort, *dbUser, *dbPass, *dbName)

	db, err := store.Open(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	redisClient := store.OpenRedis(*redisAddr)
	defer redisClient.Close()

	monitoring.InitMetrics()

	tenants := store.NewTenantRepository(db, redisClient)
	configRepo := store.NewConfigRepository(db)
	configRepo.SnapshotPath = os.Getenv("SITE_CONFIG_SNAPSHOT")
	products := store.NewProductRepository(db)
	recRepo := store.NewReclamacionRepository(db)

	var mailer service.MailSender
	if host := os.Getenv("SMTP_HOST"); host != "" {
		smtpPort, _ := strconv.Atoi(env("SMTP_PORT", "587"))
		relay, err := mail.NewRelay(mail.Config{
			Host:     host,
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     env("SMTP_FROM", "no-reply@vitrina.app"),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to configure mail relay")
		}
		dispatcher := mail.NewDispatcher(relay)
		defer dispatcher.Close()
		mailer = dispatcher
	} else {
		log.Warn().Msg("SMTP_HOST not set, reclamacion notifications disabled")
	}

	notifier := service.NewAuthStateNotifier()
	unsubscribe := notifier.OnChange(func(id *model.UserIdentity) {
		if id != nil {
			log.Info().Str("email", id.Email).Msg("session opened")
		} else {
			log.Info().Msg("session closed")
		}
	})
	defer unsubscribe()

	verifier := &service.StaticVerifier{
		Email:    env("ADMIN_EMAIL", "admin@example.com"),
		Password: env("ADMIN_PASSWORD", "password"),
		Name:     env("ADMIN_NAME", "Administrador"),
	}
	sessions := service.NewSessionService([]byte(env("SESSION_SECRET", "dev-session-secret")), verifier, notifier)
	resolver := service.NewTenantResolver(tenants, *baseDomain)
	configSvc := service.NewConfigService(configRepo, *devMode)
	reclamaciones := service.NewReclamacionService(recRepo, mailer)

	server := web.NewServer(resolver, sessions, configSvc, products, reclamaciones, recRepo)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server,
	}

	go func() {
		log.Info().Msgf("Storefront HTTP server listening on port %d", *port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	go func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})
		mux.Handle("/metrics", promhttp.Handler())

		metricsServer := &http.Server{
			Addr:    fmt.Sprintf(":%d", *metricsPort),
			Handler: mux,
		}
		log.Info().Msgf("HTTP server for health checks and metrics started on port %d", *metricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Metrics server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Server exiting")
}
