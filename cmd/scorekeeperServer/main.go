package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"scorekeeper/config"
	"scorekeeper/internal/db"
	"scorekeeper/internal/engine"
	"scorekeeper/internal/nats"
	"scorekeeper/internal/server"
	"scorekeeper/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	natsConn, js, err := nats.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsConn.Close()

	err = nats.ConfigureStream(js, &cfg.NATS.Stream)
	if err != nil {
		log.Fatalf("Failed to configure JetStream: %v", err)
	}

	var snaps engine.SnapshotStore
	switch cfg.Snapshots.Backend {
	case "postgres":
		conn, err := db.InitDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.Migrate(); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		snaps = db.NewSnapshotStore(conn)
	default:
		fileStore, err := store.NewFileSnapshotStore(cfg.Snapshots.Dir)
		if err != nil {
			log.Fatalf("Failed to create snapshot store: %v", err)
		}
		snaps = fileStore
	}

	eng := engine.New(store.NewMemoryStore(), snaps, engine.NewNATSPublisher(js), logger)
	if err := eng.Restore(context.Background()); err != nil {
		log.Fatalf("Failed to restore snapshots: %v", err)
	}

	server.StartServer(cfg, eng)
}
