package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	clientsCollection    = "clients"
	receivingsCollection = "receivings"
	salesCollection      = "sales"
	ownCollection        = "ownreceivings"
)

// Repository owns the MongoDB connection and hands out the per-collection stores.
type Repository struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("mongodb connected", zap.String("database", dbName))

	return &Repository{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// Clients returns the client store.
func (r *Repository) Clients() *ClientStore {
	return &ClientStore{coll: r.db.Collection(clientsCollection), logger: r.logger.Named("clients")}
}

// Receivings returns the receiving store. Client references are resolved
// through the client collection on every read.
func (r *Repository) Receivings() *ReceivingStore {
	return &ReceivingStore{
		coll:    r.db.Collection(receivingsCollection),
		clients: r.Clients(),
		logger:  r.logger.Named("receivings"),
	}
}

// Sales returns the sale store.
func (r *Repository) Sales() *SaleStore {
	return &SaleStore{coll: r.db.Collection(salesCollection), logger: r.logger.Named("sales")}
}

// OwnReceivings returns the own-harvest store.
func (r *Repository) OwnReceivings() *OwnReceivingStore {
	return &OwnReceivingStore{coll: r.db.Collection(ownCollection), logger: r.logger.Named("own_receivings")}
}

// Close closes the MongoDB connection.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
