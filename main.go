package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/backend"
	intconfig "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/config"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/feeds"
	router "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http"
	h "github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/http/handlers"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/location"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/maps"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/metrics"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/publisher"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/repositories"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/services"
	"github.com/ShreyaP55/transit-ticketing-nexus-33-sub001/internal/tracking"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewCollector()

	db, err := intconfig.ConnectDB(env.DatabaseDSN)
	if err != nil {
		log.Printf("warning: journal database unavailable: %v", err)
	}
	defer intconfig.CloseDB()

	locations := repositories.LocationRepository{DB: db}
	scans := repositories.ScanRepository{DB: db}
	var (
		locationJournal location.LocationJournal
		scanJournal     services.ScanJournal
		feedJournal     feeds.LatestJournal
	)
	if db != nil {
		if err := locations.EnsureTable(ctx); err != nil {
			log.Printf("warning: location journal table: %v", err)
		}
		if err := scans.EnsureTable(ctx); err != nil {
			log.Printf("warning: scan journal table: %v", err)
		}
		locationJournal, scanJournal, feedJournal = locations, scans, locations
	}

	client := backend.NewClient(env.APIBaseURL, env.UpstreamTimeout)

	// Location ingest goes through NATS when configured, else an in-process feed.
	var (
		source location.Source
		sink   location.Sink
	)
	if env.NATSURL != "" {
		nc, err := publisher.Connect(env.NATSURL, m)
		if err != nil {
			log.Fatalf("failed to connect to NATS: %v", err)
		}
		pub := publisher.NewNATSPublisher(nc, env.NATSSubjectPrefix, m)
		defer pub.Close()
		source, sink = location.NewNATSSource(nc, env.NATSSubjectPrefix), pub
		log.Printf("location fan-out via NATS %s prefix=%s", env.NATSURL, env.NATSSubjectPrefix)
	} else {
		feed := location.NewFeed()
		source, sink = feed, feed
		log.Println("NATS_URL empty, using in-process location feed")
	}

	locSvc := location.NewService(source, m)
	locSvc.SetMaxAge(env.PositionMaxAge)
	defer locSvc.Close()
	fwd := &location.Forwarder{Updater: client, Journal: locationJournal, Metrics: m, Timeout: env.UpstreamTimeout}
	if _, err := locSvc.StartWatching(fwd.Handle); err != nil {
		log.Fatalf("failed to start location watch: %v", err)
	}

	registry := tracking.NewRegistry(client, env.TrackingInterval, env.TrackerIdleTTL, m)
	registry.SetMaxTrackers(env.MaxTrackers)
	registry.Start(ctx)
	defer registry.Close()

	fares := services.NewFareService(maps.NewClient(env.MapsBaseURL, env.MapsAPIKey, env.UpstreamTimeout), m)

	hs := &h.Handlers{
		Env:   env,
		Fares: fares,
		Scans: services.ScanService{
			Rides:       client,
			Notifier:    client,
			Journal:     scanJournal,
			Locator:     locSvc,
			Concessions: client,
			Fares:       fares,
			Metrics:     m,
		},
		Passes:   services.PassService{Backend: client},
		Wallet:   services.WalletService{Backend: client},
		Trips:    services.TripService{Backend: client, Concessions: client, Fares: fares},
		Docs:     services.DocsService{Backend: client},
		Tracking: registry,
		Admin:    tracking.NewAdminCache(client, env.AdminCacheTTL, m),
		Accounts: client,
		Feed:     feeds.VehicleFeed{Source: client, Journal: feedJournal},
		Ingest:   sink,
		Metrics:  m,
	}

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           router.NewRouter(hs),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("gateway listening on %s (backend %s)", env.AppAddr, env.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown failed: %v", err)
	}
	log.Println("server stopped.")
}
