package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nameCollation compares client names case-insensitively.
var nameCollation = &options.Collation{Locale: "uk", Strength: 2}

// rangeFilter matches documents with start <= timestamp <= end.
func rangeFilter(start, end time.Time) bson.M {
	return bson.M{"timestamp": bson.M{
		"$gte": start.UnixMilli(),
		"$lte": end.UnixMilli(),
	}}
}

// receivingRangeFilter narrows rangeFilter to one client reference when
// clientID is a valid object id.
func receivingRangeFilter(start, end time.Time, clientID primitive.ObjectID) bson.M {
	filter := rangeFilter(start, end)
	if !clientID.IsZero() {
		filter["client"] = clientID
	}
	return filter
}

// visibleFilter matches clients that are not hidden. Documents written before
// the isHidden field existed count as visible.
func visibleFilter() bson.M {
	return bson.M{"isHidden": bson.M{"$ne": true}}
}

func newestFirst() bson.D {
	return bson.D{{Key: "timestamp", Value: -1}}
}
