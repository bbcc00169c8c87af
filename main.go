package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"crm_bridge/api"
	"crm_bridge/bridge"
	"crm_bridge/browser"
	"crm_bridge/config"
	"crm_bridge/crm"
	"crm_bridge/httputil"
	"crm_bridge/logging"
	"crm_bridge/scheduler"
	"crm_bridge/services"
	"crm_bridge/storage"
	"crm_bridge/workers"
)

var (
	tenantID    = flag.String("tenant", "", "Tenant for one-shot operations")
	pullID      = flag.String("pull", "", "Pull a legacy property by id and exit")
	pushID      = flag.String("push", "", "Push a canonical property by id and exit")
	previewLead = flag.String("preview-lead", "", "Preview a legacy lead by id and exit")
	importLead  = flag.String("lead", "", "Import a legacy lead by id and exit")
	retryMedia  = flag.Bool("retry-media", false, "Retry fallback media once and exit")
	resetData   = flag.Bool("reset", false, "Clear run history and queued commands, then exit")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := logging.Setup(cfg.LogPath, logging.DefaultMaxSize)
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}
	logging.SetLevel(cfg.LogLevel)

	log.Println("Starting crm_bridge...")
	log.Printf("Loaded %d tenant configs", len(cfg.Tenants))
	for id, tenant := range cfg.Tenants {
		log.Printf("  - %s (%s)", tenant.Name, id)
	}

	clients := httputil.NewClients(cfg.Proxy)
	if cfg.Proxy.URL != "" {
		log.Printf("Proxy: %s", maskConnectionString(cfg.Proxy.URL))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sqliteStore, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open SQLite: %v", err)
	}
	defer sqliteStore.Close()
	log.Printf("SQLite database: %s", cfg.DBPath)

	if *resetData {
		if err := sqliteStore.ResetAllData(); err != nil {
			log.Fatalf("Reset failed: %v", err)
		}
		log.Println("Operational data cleared")
		return
	}

	delivery, err := storage.NewDelivery(ctx, cfg.Media, clients.API)
	if err != nil {
		log.Fatalf("Failed to configure media delivery: %v", err)
	}
	if delivery == nil {
		log.Printf("Media delivery (%s) not configured, images will keep their source URLs", cfg.Media.Provider)
	}
	migrator := workers.NewMediaMigrator(clients.Media, delivery)

	session := browser.NewManager(browser.Options{
		Headless: cfg.Browser.Headless,
		Install:  cfg.Browser.Install,
	})
	defer session.Close()

	policy := crm.DefaultPollPolicy
	policy.Timeout = cfg.Browser.UploadTimeout
	uploader := crm.NewUploader(clients.Media, policy)

	orchestrator := bridge.NewOrchestrator(cfg, sqliteStore, session, migrator, uploader)

	if cfg.DatabaseURL != "" {
		pgStore, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer pgStore.Close()
		log.Printf("Connected to Postgres: %s", maskConnectionString(cfg.DatabaseURL))

		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to prepare schema: %v", err)
		}

		contacts := services.NewContactService(pgStore)
		linker := services.NewLinker(contacts, services.NewProjectService(pgStore))
		orchestrator.SetServices(
			linker,
			services.NewPropertyService(pgStore),
			services.NewLeadService(contacts),
			workers.NewMediaRetryWorker(pgStore, migrator),
		)
		log.Println("Services initialized")
	} else {
		log.Println("DATABASE_URL not set: pulls will not be saved, push and lead import are disabled")
	}

	// One-shot commands
	switch {
	case *pullID != "":
		resp := orchestrator.PullProperty(ctx, *tenantID, *pullID)
		exitWith(resp, resp.Success)
		return
	case *pushID != "":
		resp := orchestrator.PushProperty(ctx, *tenantID, *pushID)
		exitWith(resp, resp.Success)
		return
	case *previewLead != "":
		resp := orchestrator.PreviewLead(ctx, *tenantID, *previewLead)
		exitWith(resp, resp.Success)
		return
	case *importLead != "":
		resp := orchestrator.ImportLead(ctx, *tenantID, *importLead)
		exitWith(resp, resp.Success)
		return
	case *retryMedia:
		res, err := orchestrator.RetryMedia(ctx)
		if err != nil {
			log.Fatalf("Media retry failed: %v", err)
		}
		exitWith(res, true)
		return
	}

	// Daemon mode
	sched := scheduler.New(cfg, orchestrator, sqliteStore)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	server := api.NewServer(orchestrator, sqliteStore)
	go func() {
		log.Printf("API listening on %s", cfg.APIAddr)
		if err := server.ListenAndServe(ctx, cfg.APIAddr); err != nil {
			log.Printf("API server error: %v", err)
			cancel()
		}
	}()

	log.Println("Daemon running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	cancel()
	sched.Stop()
	log.Println("Goodbye!")
}

// exitWith prints a one-shot result as JSON, exiting non-zero unless ok.
func exitWith(v any, ok bool) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
	os.Stdout.Write(append(out, '\n'))
	if !ok {
		os.Exit(1)
	}
}

// maskConnectionString masks password in connection string for logging
func maskConnectionString(connStr string) string {
	start := 0
	for i := 0; i < len(connStr)-3; i++ {
		if connStr[i:i+3] == "://" {
			start = i + 3
			break
		}
	}
	if start == 0 {
		return connStr
	}

	colonIdx := -1
	atIdx := -1
	for i := start; i < len(connStr); i++ {
		if connStr[i] == ':' && colonIdx == -1 {
			colonIdx = i
		}
		if connStr[i] == '@' {
			atIdx = i
			break
		}
	}

	if colonIdx > 0 && atIdx > colonIdx {
		return connStr[:colonIdx+1] + "****" + connStr[atIdx:]
	}
	return connStr
}
