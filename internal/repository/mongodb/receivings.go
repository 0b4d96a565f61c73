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

// ReceivingStore persists receivings. Reads resolve the client reference;
// an unresolvable reference leaves Receiving.Client nil.
type ReceivingStore struct {
	coll    *mongo.Collection
	clients *ClientStore
	logger  *zap.Logger
}

// FindAll returns every receiving, newest first.
func (s *ReceivingStore) FindAll(ctx context.Context) ([]models.Receiving, error) {
	return s.find(ctx, bson.M{})
}

// FindByRangeAndClient returns receivings with start <= timestamp <= end,
// restricted to clientID when it is not empty.
func (s *ReceivingStore) FindByRangeAndClient(ctx context.Context, start, end time.Time, clientID string) ([]models.Receiving, error) {
	var oid primitive.ObjectID
	if clientID != "" {
		var err error
		if oid, err = primitive.ObjectIDFromHex(clientID); err != nil {
			return nil, fmt.Errorf("%w: %s", models.ErrClientNotFound, clientID)
		}
	}
	return s.find(ctx, receivingRangeFilter(start, end, oid))
}

// Insert stores a new receiving and returns it with its id.
func (s *ReceivingStore) Insert(ctx context.Context, receiving models.Receiving) (models.Receiving, error) {
	clientID, err := primitive.ObjectIDFromHex(receiving.ClientID)
	if err != nil {
		return models.Receiving{}, fmt.Errorf("%w: %s", models.ErrClientNotFound, receiving.ClientID)
	}

	res, err := s.coll.InsertOne(ctx, newReceivingDocument(receiving, clientID))
	if err != nil {
		return models.Receiving{}, fmt.Errorf("insert receiving: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		receiving.ID = oid.Hex()
	}
	s.logger.Debug("receiving inserted", zap.String("id", receiving.ID), zap.Int("records", len(receiving.Records)))
	return receiving, nil
}

// Update replaces client, records, timestamp and totals of a receiving.
func (s *ReceivingStore) Update(ctx context.Context, receiving models.Receiving) error {
	oid, err := primitive.ObjectIDFromHex(receiving.ID)
	if err != nil {
		return fmt.Errorf("%w: receiving %s", models.ErrNotFound, receiving.ID)
	}
	clientID, err := primitive.ObjectIDFromHex(receiving.ClientID)
	if err != nil {
		return fmt.Errorf("%w: %s", models.ErrClientNotFound, receiving.ClientID)
	}

	doc := newReceivingDocument(receiving, clientID)
	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"client":      doc.Client,
		"records":     doc.Records,
		"timestamp":   doc.Timestamp,
		"totalWeight": doc.TotalWeight,
		"totalPrice":  doc.TotalPrice,
	}})
	if err != nil {
		return fmt.Errorf("update receiving %s: %w", receiving.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: receiving %s", models.ErrNotFound, receiving.ID)
	}
	return nil
}

// Delete removes a receiving.
func (s *ReceivingStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.coll, id, "receiving")
}

func (s *ReceivingStore) find(ctx context.Context, filter bson.M) ([]models.Receiving, error) {
	cursor, err := s.coll.Find(ctx, filter, options.Find().SetSort(newestFirst()))
	if err != nil {
		return nil, fmt.Errorf("find receivings: %w", err)
	}

	var docs []receivingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode receivings: %w", err)
	}

	return s.resolve(ctx, docs)
}

func (s *ReceivingStore) resolve(ctx context.Context, docs []receivingDocument) ([]models.Receiving, error) {
	seen := make(map[primitive.ObjectID]struct{}, len(docs))
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		if _, ok := seen[doc.Client]; ok {
			continue
		}
		seen[doc.Client] = struct{}{}
		ids = append(ids, doc.Client)
	}

	clients, err := s.clients.findByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	receivings := make([]models.Receiving, len(docs))
	for i, doc := range docs {
		receivings[i] = doc.model()
		if client, ok := clients[doc.Client]; ok {
			receivings[i].Client = &client
			continue
		}
		s.logger.Warn("receiving references unknown client",
			zap.String("receiving", receivings[i].ID),
			zap.String("client", receivings[i].ClientID))
	}
	return receivings, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id, entity string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s %s", models.ErrNotFound, entity, id)
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", entity, id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s %s", models.ErrNotFound, entity, id)
	}
	return nil
}
