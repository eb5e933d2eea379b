// File: /database/mongo.go
package database

import (
	"context"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo is a lazily-initialized handle to the public events database.
// Connection failures are remembered only for the failed attempt; callers get
// nil and are expected to degrade (empty lists for reads, structured failures
// for writes) rather than abort.
type Mongo struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
}

func NewMongo(uri, dbName string) *Mongo {
	return &Mongo{uri: uri, dbName: dbName}
}

// Database returns the handle, connecting on first use. Returns nil when the
// URI is unset or the store is unreachable.
func (m *Mongo) Database(ctx context.Context) *mongo.Database {
	if m.uri == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(m.uri))
		if err != nil {
			log.Printf("[MongoDB] Connection failed: %v", err)
			return nil
		}
		if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
			log.Printf("[MongoDB] Ping failed: %v", err)
			_ = client.Disconnect(connectCtx)
			return nil
		}
		log.Println("[MongoDB] Connected successfully")
		m.client = client
	}

	return m.client.Database(m.dbName)
}

// Close disconnects the client if one was established.
func (m *Mongo) Close(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		if err := m.client.Disconnect(ctx); err != nil {
			log.Printf("[MongoDB] Disconnect failed: %v", err)
		}
		m.client = nil
	}
}
