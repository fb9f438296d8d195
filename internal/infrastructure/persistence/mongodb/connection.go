package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/QamarDeenSoomro/hse-objectives-sub000/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotConfigured is returned when no Mongo URI is set. Restores targeting
// the mongo platform are the only callers, so the service can run without it.
var ErrNotConfigured = errors.New("mongodb: no URI configured")

// Connect dials the document store and verifies the connection with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Client, error) {
	if cfg.Mongo.URI == "" {
		return nil, ErrNotConfigured
	}

	clientOptions := options.Client().ApplyURI(cfg.Mongo.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// Database returns the application database handle.
func Database(client *mongo.Client, cfg *config.Config) *mongo.Database {
	name := cfg.Mongo.Database
	if name == "" {
		name = "hse_objectives"
	}
	return client.Database(name)
}
