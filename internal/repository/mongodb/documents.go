package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

// Timestamps are stored as epoch milliseconds.

type clientDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Note     string             `bson:"note"`
	IsHidden bool               `bson:"isHidden"`
}

type recordDocument struct {
	Weight float64 `bson:"weight"`
	Price  float64 `bson:"price"`
}

type receivingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Client      primitive.ObjectID `bson:"client"`
	Records     []recordDocument   `bson:"records"`
	Timestamp   int64              `bson:"timestamp"`
	TotalWeight float64            `bson:"totalWeight"`
	TotalPrice  float64            `bson:"totalPrice"`
}

type saleDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Weight    float64            `bson:"weight"`
	Price     float64            `bson:"price"`
	Timestamp int64              `bson:"timestamp"`
}

func (d clientDocument) model() models.Client {
	return models.Client{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Note:     d.Note,
		IsHidden: d.IsHidden,
	}
}

// model leaves Client nil; the store resolves it.
func (d receivingDocument) model() models.Receiving {
	records := make([]models.Record, len(d.Records))
	for i, rec := range d.Records {
		records[i] = models.Record{Weight: rec.Weight, Price: rec.Price}
	}
	return models.Receiving{
		ID:          d.ID.Hex(),
		ClientID:    d.Client.Hex(),
		Records:     records,
		Timestamp:   time.UnixMilli(d.Timestamp),
		TotalWeight: d.TotalWeight,
		TotalPrice:  d.TotalPrice,
	}
}

func newReceivingDocument(r models.Receiving, clientID primitive.ObjectID) receivingDocument {
	records := make([]recordDocument, len(r.Records))
	for i, rec := range r.Records {
		records[i] = recordDocument{Weight: rec.Weight, Price: rec.Price}
	}
	return receivingDocument{
		Client:      clientID,
		Records:     records,
		Timestamp:   r.Timestamp.UnixMilli(),
		TotalWeight: r.TotalWeight,
		TotalPrice:  r.TotalPrice,
	}
}

func (d saleDocument) model() models.Sale {
	return models.Sale{
		ID:        d.ID.Hex(),
		Weight:    d.Weight,
		Price:     d.Price,
		Timestamp: time.UnixMilli(d.Timestamp),
	}
}

func newSaleDocument(s models.Sale) saleDocument {
	return saleDocument{
		Weight:    s.Weight,
		Price:     s.Price,
		Timestamp: s.Timestamp.UnixMilli(),
	}
}

type ownReceivingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Weight    float64            `bson:"weight"`
	Timestamp int64              `bson:"timestamp"`
}

func (d ownReceivingDocument) model() models.OwnReceiving {
	return models.OwnReceiving{
		ID:        d.ID.Hex(),
		Weight:    d.Weight,
		Timestamp: time.UnixMilli(d.Timestamp),
	}
}

func newOwnReceivingDocument(o models.OwnReceiving) ownReceivingDocument {
	return ownReceivingDocument{
		Weight:    o.Weight,
		Timestamp: o.Timestamp.UnixMilli(),
	}
}
