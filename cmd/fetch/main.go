package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mobula-token-fetch/internal/addresses"
	"mobula-token-fetch/internal/config"
	"mobula-token-fetch/internal/ingestion"
	"mobula-token-fetch/internal/mobula"
	"mobula-token-fetch/internal/reporting"
	"mobula-token-fetch/internal/storage"
	"mobula-token-fetch/internal/storage/memory"
	"mobula-token-fetch/internal/storage/migrations"
	mongostore "mobula-token-fetch/internal/storage/mongo"
	pgstore "mobula-token-fetch/internal/storage/postgres"
)

// Exit codes.
const (
	exitConfig     = 2 // missing required configuration or empty address list
	exitConnection = 3 // document-store connection failure
)

func main() {
	// Parse flags
	var addressFlag, outFlag string
	flag.StringVar(&addressFlag, "address", "", "Single token address to query (overrides configured addresses)")
	flag.StringVar(&addressFlag, "a", "", "Shorthand for -address")
	flag.StringVar(&outFlag, "out", "", "Path to save JSON output. A directory gets per-address files, a file gets the combined mapping")
	flag.StringVar(&outFlag, "o", "", "Shorthand for -out")
	var delayFlag float64
	flag.Float64Var(&delayFlag, "delay", 0.25, "Delay (seconds) between requests to avoid rate limits")
	flag.Float64Var(&delayFlag, "d", 0.25, "Shorthand for -delay")
	store := flag.String("store", "mongo", "Persistence backend: mongo, postgres, or memory")
	envFile := flag.String("env-file", ".env", "Settings file to load configuration and addresses from")
	timeout := flag.Duration("timeout", mobula.DefaultTimeout, "API request timeout")
	flag.Parse()

	// Setup logger
	logger := log.New(os.Stderr, "[fetch] ", log.LstdFlags)

	backend, err := config.ParseBackend(*store)
	if err != nil {
		fail(exitConfig, "%v", err)
	}

	cfg := config.Load(*envFile)
	if err := cfg.Validate(backend); err != nil {
		fail(exitConfig, "%v", err)
	}

	// Resolve addresses
	addrs := addresses.Resolve(addressFlag, *envFile)
	if len(addrs) == 0 {
		fail(exitConfig, "no addresses found to query")
	}

	// Classify the output path before doing any work
	detailsDir := ""
	resultsFile := ""
	if outFlag != "" {
		switch reporting.Classify(outFlag, os.Stat) {
		case reporting.PathDirectory:
			detailsDir = outFlag
		case reporting.PathFile:
			resultsFile = outFlag
		}
	}

	// Create context with cancellation on SIGINT/SIGTERM. The loop stops
	// between addresses; the summary still covers what was processed.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, finishing current address...", sig)
		cancel()
	}()

	// Connect the persistence backend
	detailStore, err := openStore(ctx, backend, cfg)
	if err != nil {
		fail(exitConnection, "failed to connect to %s store: %v", backend, err)
	}
	defer detailStore.Close(context.Background())

	client := mobula.NewClient(cfg.APIKey, mobula.WithTimeout(*timeout))

	runner := ingestion.NewRunner(ingestion.RunnerOptions{
		Fetcher:    client,
		Store:      detailStore,
		DetailsDir: detailsDir,
		Delay:      time.Duration(delayFlag * float64(time.Second)),
		Logger:     logger,
	})

	results := runner.Run(ctx, addrs)

	// Final output: stdout always, combined file only for file-classified paths
	if err := reporting.Print(os.Stdout, results); err != nil {
		logger.Fatalf("print results: %v", err)
	}

	if detailsDir != "" {
		logger.Printf("saved per-address JSON files to %s", detailsDir)
	}
	if resultsFile != "" {
		if err := reporting.WriteResults(resultsFile, results); err != nil {
			logger.Fatalf("save combined JSON: %v", err)
		}
		logger.Printf("saved combined JSON to %s", resultsFile)
	}
}

// openStore connects the chosen backend and verifies liveness. The postgres
// backend also applies embedded migrations so a fresh database works out of
// the box.
func openStore(ctx context.Context, backend config.Backend, cfg config.Config) (storage.TokenDetailStore, error) {
	switch backend {
	case config.BackendMongo:
		conn, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		return mongostore.NewTokenDetailStore(conn, cfg.MongoDB, cfg.MongoCollection), nil

	case config.BackendPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return pgstore.NewTokenDetailStore(pool), nil

	case config.BackendMemory:
		return memory.NewTokenDetailStore(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}

func fail(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
	os.Exit(code)
}
