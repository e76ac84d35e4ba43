// Package main runs the stablecoin control-plane server: the engine over
// PostgreSQL (or in-memory storage), the HTTP API, the WebSocket event
// stream, and the optional ClickHouse analytics sink.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stablecoin-core/internal/api"
	"stablecoin-core/internal/engine"
	"stablecoin-core/internal/gate"
	"stablecoin-core/internal/ledger"
	"stablecoin-core/internal/observability"
	"stablecoin-core/internal/oracle"
	"stablecoin-core/internal/solana"
	"stablecoin-core/internal/storage"
	chstore "stablecoin-core/internal/storage/clickhouse"
	"stablecoin-core/internal/storage/memory"
	"stablecoin-core/internal/storage/migrations"
	pgstore "stablecoin-core/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	listenAddr := flag.String("listen-addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional analytics sink)")
	rpcEndpoint := flag.String("rpc-endpoint", os.Getenv("SOLANA_RPC_ENDPOINT"), "Solana RPC HTTP endpoint for oracle price reads")
	oracleNetwork := flag.String("oracle-network", envOr("ORACLE_NETWORK", "mainnet"), "Oracle owner set: mainnet or devnet")
	rejectOverflow := flag.Bool("reject-cap-overflow", false, "Reject mints when the oracle cap conversion overflows instead of clamping")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Storage
	tx, stores, cleanup, err := createStorage(ctx, *postgresDSN, *useMemory, logger)
	if err != nil {
		logger.Fatalf("Failed to create storage: %v", err)
	}
	defer cleanup()

	metrics := observability.NewMetrics("")

	// Optional ClickHouse analytics sink
	var publisher engine.EventPublisher
	hub := api.NewHub(log.New(os.Stdout, "[events] ", log.LstdFlags))
	publisher = hub
	if *clickhouseDSN != "" {
		chConn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
		if err != nil {
			logger.Fatalf("Failed to run clickhouse migrations: %v", err)
		}
		defer chConn.Close()

		sink := chstore.NewEventStore(chConn)
		publisher = newFanout(hub, newSinkPublisher(ctx, sink, log.New(os.Stdout, "[sink] ", log.LstdFlags)))
		logger.Println("ClickHouse analytics sink enabled")
	}

	// Oracle price source
	var prices oracle.Source
	if *rpcEndpoint != "" {
		prices = oracle.NewRPCSource(solana.NewHTTPClient(*rpcEndpoint))
		logger.Printf("Oracle price source enabled via %s", *rpcEndpoint)
	}

	converter, err := buildConverter(*oracleNetwork, *rejectOverflow)
	if err != nil {
		logger.Fatalf("Invalid oracle configuration: %v", err)
	}

	// Token ledger with the deny-list gate on its transfer path
	tokenLedger := ledger.NewInMemory(gate.New(stores.Blacklist, gate.WithMetrics(metrics)))

	eng := engine.New(engine.Options{
		Tx:        tx,
		Ledger:    tokenLedger,
		Prices:    prices,
		Converter: converter,
		Metrics:   metrics,
		Publisher: publisher,
	})

	server := api.NewServer(eng, stores, hub, logger)

	httpServer := &http.Server{
		Addr:    *listenAddr,
		Handler: server.Router(),
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Printf("HTTP shutdown error: %v", err)
		}
		hub.Close()
	}()

	logger.Printf("Listening on %s", *listenAddr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStorage builds the transaction manager and direct store access.
func createStorage(ctx context.Context, postgresDSN string, useMemory bool, logger *log.Logger) (storage.TxManager, storage.Stores, func(), error) {
	if useMemory {
		store := memory.NewStore()
		return store, store.Stores(), func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, storage.Stores{}, nil, err
	}

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, storage.Stores{}, nil, err
	}
	logger.Println("Postgres migrations applied")

	store := pgstore.NewStore(pool)
	return store, store.Stores(), pool.Close, nil
}

// buildConverter applies the oracle network and overflow policy flags.
func buildConverter(network string, rejectOverflow bool) (*oracle.Converter, error) {
	var opts []oracle.ConverterOption

	switch strings.ToLower(network) {
	case "mainnet":
		opts = append(opts, oracle.WithTrustedOwners(oracle.PythV2Mainnet))
	case "devnet":
		opts = append(opts, oracle.WithTrustedOwners(oracle.PythV2Devnet))
	default:
		return nil, fmt.Errorf("unknown oracle network %q", network)
	}

	if rejectOverflow {
		opts = append(opts, oracle.WithOverflowPolicy(oracle.OverflowReject))
	}
	return oracle.NewConverter(opts...), nil
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
