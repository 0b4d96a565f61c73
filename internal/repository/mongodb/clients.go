package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

// ClientStore persists clients.
type ClientStore struct {
	coll   *mongo.Collection
	logger *zap.Logger
}

// List returns clients sorted by name. Hidden clients are skipped unless
// includeHidden is set.
func (s *ClientStore) List(ctx context.Context, includeHidden bool) ([]models.Client, error) {
	filter := bson.M{}
	if !includeHidden {
		filter = visibleFilter()
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetCollation(nameCollation)
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}

	var docs []clientDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}

	clients := make([]models.Client, len(docs))
	for i, doc := range docs {
		clients[i] = doc.model()
	}
	return clients, nil
}

// FindByID returns nil when the id is malformed or unknown.
func (s *ClientStore) FindByID(ctx context.Context, id string) (*models.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	return s.findOne(ctx, bson.M{"_id": oid}, nil)
}

// FindByName looks a client up by name ignoring case. With visibleOnly set
// hidden clients are ignored.
func (s *ClientStore) FindByName(ctx context.Context, name string, visibleOnly bool) (*models.Client, error) {
	filter := bson.M{"name": name}
	if visibleOnly {
		filter = visibleFilter()
		filter["name"] = name
	}
	return s.findOne(ctx, filter, options.FindOne().SetCollation(nameCollation))
}

// findByIDs resolves a batch of references into a lookup table.
func (s *ClientStore) findByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Client, error) {
	found := make(map[primitive.ObjectID]models.Client, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find clients by id: %w", err)
	}

	var docs []clientDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	for _, doc := range docs {
		found[doc.ID] = doc.model()
	}
	return found, nil
}

// Insert stores a new client and returns it with its id.
func (s *ClientStore) Insert(ctx context.Context, client models.Client) (models.Client, error) {
	doc := clientDocument{Name: client.Name, Note: client.Note, IsHidden: client.IsHidden}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return models.Client{}, fmt.Errorf("insert client: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		client.ID = oid.Hex()
	}
	s.logger.Debug("client inserted", zap.String("id", client.ID))
	return client, nil
}

// Update overwrites name, note and visibility of an existing client.
func (s *ClientStore) Update(ctx context.Context, client models.Client) error {
	oid, err := primitive.ObjectIDFromHex(client.ID)
	if err != nil {
		return fmt.Errorf("%w: client %s", models.ErrNotFound, client.ID)
	}

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":     client.Name,
		"note":     client.Note,
		"isHidden": client.IsHidden,
	}})
	if err != nil {
		return fmt.Errorf("update client %s: %w", client.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%w: client %s", models.ErrNotFound, client.ID)
	}
	return nil
}

func (s *ClientStore) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*models.Client, error) {
	var doc clientDocument
	var err error
	if opts != nil {
		err = s.coll.FindOne(ctx, filter, opts).Decode(&doc)
	} else {
		err = s.coll.FindOne(ctx, filter).Decode(&doc)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	client := doc.model()
	return &client, nil
}
