package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

// SaleStore persists sales.
type SaleStore struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// FindAll returns every sale, newest first.
func (s *SaleStore) FindAll(ctx context.Context) ([]models.Sale, error) {
	return s.find(ctx, bson.M{}, newestFirst())
}

// FindByRange returns sales with start <= timestamp <= end, oldest first.
func (s *SaleStore) FindByRange(ctx context.Context, start, end time.Time) ([]models.Sale, error) {
	return s.find(ctx, rangeFilter(start, end), bson.D{{Key: "timestamp", Value: 1}})
}

// Insert stores a new sale and returns it with its id.
func (s *SaleStore) Insert(ctx context.Context, sale models.Sale) (models.Sale, error) {
	res, err := s.coll.InsertOne(ctx, newSaleDocument(sale))
	if err != nil {
		return models.Sale{}, fmt.Errorf("insert sale: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		sale.ID = oid.Hex()
	}
	s.logger.Debug("sale inserted", zap.String("id", sale.ID))
	return sale, nil
}

// Update overwrites weight, price and timestamp of a sale.
func (s *SaleStore) Update(ctx context.Context, sale models.Sale) error {
	oid, err := primitive.ObjectIDFromHex(sale.ID)
	if err != nil {
		return fmt.Errorf("%w: sale %s", models.ErrNotFound, sale.ID)
	}

	doc := newSaleDocument(sale)
	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"weight":    doc.Weight,
		"price":     doc.Price,
		"timestamp": doc.Timestamp,
	}})
	if err != nil {
		return fmt.Errorf("update sale %s: %w", sale.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: sale %s", models.ErrNotFound, sale.ID)
	}
	return nil
}

// Delete removes a sale.
func (s *SaleStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll, id, "sale")
}

func (s *SaleStore) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Sale, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find sales: %w", err)
	}

	var docs []saleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}

	sales := make([]models.Sale, len(docs))
	for i, doc := range docs {
		sales[i] = doc.model()
	}
	return sales, nil
}
