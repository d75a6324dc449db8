package supplierRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (r *MongoSupplierRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	supplierIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "profile.email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "profile.category", Value: 1}, {Key: "profile.rating", Value: -1}}},
		{Keys: bson.D{{Key: "primarySupplierId", Value: 1}}},
		{Keys: bson.D{{Key: "blockedIntervals.date", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, supplierIdx); err != nil {
		return fmt.Errorf("failed to create supplier indexes: %w", err)
	}

	syncIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "supplierId", Value: 1}, {Key: "provider", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := r.syncColl.Indexes().CreateOne(ctx, syncIdx); err != nil {
		return fmt.Errorf("failed to create sync run index: %w", err)
	}
	return nil
}
