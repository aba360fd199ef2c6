// Package main provides the REST API server for the deck and collection
// state manager.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kyamashiro/ygo-companion/internal/api"
	"github.com/kyamashiro/ygo-companion/internal/archetype"
	"github.com/kyamashiro/ygo-companion/internal/catalog"
	"github.com/kyamashiro/ygo-companion/internal/config"
	"github.com/kyamashiro/ygo-companion/internal/deck"
	"github.com/kyamashiro/ygo-companion/internal/events"
	"github.com/kyamashiro/ygo-companion/internal/recommend"
	"github.com/kyamashiro/ygo-companion/internal/storage"
)

var (
	port       = flag.Int("port", 0, "API server port (overrides config)")
	dbPath     = flag.String("db-path", "", "Database path (overrides config)")
	configFile = flag.String("config", "", "Config file path (default: ~/.ygo-companion/config.toml)")
)

func main() {
	flag.Parse()

	fmt.Println("YGO Companion - REST API Server")
	fmt.Println("===============================")
	fmt.Println()

	// Load configuration
	var cfg *config.Config
	var err error
	if *configFile != "" {
		cfg, err = config.LoadFrom(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	// Setup database path
	finalDBPath, err := cfg.DatabasePath()
	if err != nil {
		log.Fatalf("Failed to resolve database path: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(finalDBPath), 0o755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}
	fmt.Printf("Database: %s\n", finalDBPath)

	// Open database
	dbConfig := storage.DefaultConfig(finalDBPath)
	dbConfig.AutoMigrate = true
	db, err := storage.Open(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	var encryption *storage.EncryptionConfig
	if cfg.Storage.EncryptionPassword != "" {
		encryption = storage.DefaultEncryptionConfig(cfg.Storage.EncryptionPassword)
	}
	snapshots := storage.NewSnapshotStore(db, encryption)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Card catalog: local file when configured, YGOPRODeck API otherwise
	client := catalog.NewClient(cfg.Catalog.BaseURL)
	cache := catalog.NewCache(client)
	if cfg.Catalog.CardFile != "" {
		source := catalog.NewFileSource(cfg.Catalog.CardFile, cache)
		if err := source.Load(); err != nil {
			log.Fatalf("Failed to load catalog file: %v", err)
		}
		if cfg.Catalog.WatchFile {
			go func() {
				if err := source.Watch(ctx); err != nil {
					log.Printf("Catalog file watch stopped: %v", err)
				}
			}()
		}
	} else {
		go func() {
			if err := cache.FetchAll(ctx); err != nil {
				log.Printf("Catalog fetch failed: %v", err)
			} else {
				log.Printf("Catalog loaded: %d cards", cache.Len())
			}
		}()
	}

	// Archetype classifier
	reference := archetype.NewReferenceList(cfg.Catalog.ArchetypeURL)
	classifier := archetype.NewClassifier(cache, reference)

	// Deck store and event wiring
	dispatcher := events.NewDispatcher()
	store := deck.NewStore(classifier, dispatcher)

	// Restore decks from the last snapshot
	loadCtx, loadCancel := context.WithTimeout(ctx, 10*time.Second)
	projected, found, err := snapshots.Load(loadCtx)
	loadCancel()
	if err != nil {
		log.Fatalf("Failed to load deck snapshot: %v", err)
	}
	if found {
		store.Load(projected)
		fmt.Printf("Restored %d deck(s) from snapshot\n", len(projected))
	}

	recomputeDelay, err := cfg.GetRecomputeDelay()
	if err != nil {
		log.Fatalf("Invalid recompute delay: %v", err)
	}

	dispatcher.Register(events.NewLoggingObserver(cfg.Events.VerboseLogging))
	dispatcher.Register(deck.NewRecomputeObserver(store, recomputeDelay))
	dispatcher.Register(storage.NewSnapshotObserver(store, snapshots))

	// Auto-complete service (disabled when no URL is configured)
	var recommender *recommend.Client
	if cfg.Recommend.URL != "" {
		recommender = recommend.NewClient(cfg.Recommend.URL)
	}

	// Create API server
	server := api.NewServer(&api.Config{Port: cfg.Server.Port}, api.Deps{
		Store:      store,
		Catalog:    cache,
		Archetypes: reference,
		Recommend:  recommender,
	})

	if err := server.Start(); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}

	fmt.Println()
	fmt.Printf("API server running at http://localhost:%d\n", server.Port())
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	fmt.Println()
	fmt.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	// Persist final state before exit
	saveCtx, saveCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer saveCancel()
	if err := snapshots.Save(saveCtx, store.Project()); err != nil {
		log.Printf("Error saving final snapshot: %v", err)
	}

	fmt.Println("API server stopped.")
}
