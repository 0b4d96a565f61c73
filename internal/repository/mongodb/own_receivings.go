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

// OwnReceivingStore persists own-harvest weights.
type OwnReceivingStore struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// FindAll returns every own receiving, newest first.
func (s *OwnReceivingStore) FindAll(ctx context.Context) ([]models.OwnReceiving, error) {
	return s.find(ctx, bson.M{})
}

// FindByRange returns own receivings with start <= timestamp <= end, newest first.
func (s *OwnReceivingStore) FindByRange(ctx context.Context, start, end time.Time) ([]models.OwnReceiving, error) {
	return s.find(ctx, rangeFilter(start, end))
}

// Insert stores a new own receiving and returns it with its id.
func (s *OwnReceivingStore) Insert(ctx context.Context, own models.OwnReceiving) (models.OwnReceiving, error) {
	res, err := s.coll.InsertOne(ctx, newOwnReceivingDocument(own))
	if err != nil {
		return models.OwnReceiving{}, fmt.Errorf("insert own receiving: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		own.ID = oid.Hex()
	}
	s.logger.Debug("own receiving inserted", zap.String("id", own.ID))
	return own, nil
}

// Update overwrites weight and timestamp of an own receiving.
func (s *OwnReceivingStore) Update(ctx context.Context, own models.OwnReceiving) error {
	oid, err := primitive.ObjectIDFromHex(own.ID)
	if err != nil {
		return fmt.Errorf("%w: own receiving %s", models.ErrNotFound, own.ID)
	}

	doc := newOwnReceivingDocument(own)
	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"weight":    doc.Weight,
		"timestamp": doc.Timestamp,
	}})
	if err != nil {
		return fmt.Errorf("update own receiving %s: %w", own.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: own receiving %s", models.ErrNotFound, own.ID)
	}
	return nil
}

// Delete removes an own receiving.
func (s *OwnReceivingStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll, id, "own receiving")
}

func (s *OwnReceivingStore) find(ctx context.Context, filter bson.M) ([]models.OwnReceiving, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(newestFirst()))
	if err != nil {
		return nil, fmt.Errorf("find own receivings: %w", err)
	}

	var docs []ownReceivingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode own receivings: %w", err)
	}

	out := make([]models.OwnReceiving, len(docs))
	for i, doc := range docs {
		out[i] = doc.model()
	}
	return out, nil
}
