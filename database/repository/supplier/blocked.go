package supplierRepo

import (
	"context"
	"fmt"
	"time"

	"festivo/database"
	"festivo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddBlockedInterval appends one blocked interval to the supplier document.
func (r *MongoSupplierRepo) AddBlockedInterval(id string, interval models.BlockedInterval) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$push": bson.M{"blockedIntervals": interval}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add blocked interval for supplier %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("supplier with id %s not found", id)
	}
	return nil
}

// RemoveBlockedInterval deletes a blocked interval by block ID. Calendar
// sourced intervals are owned by sync and cannot be removed here.
func (r *MongoSupplierRepo) RemoveBlockedInterval(id, blockID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$pull": bson.M{"blockedIntervals": bson.M{
		"blockId": blockID,
		"source":  models.SourceManual,
	}}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to remove blocked interval %s for supplier %s: %w", blockID, id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("supplier with id %s not found", id)
	}
	return nil
}

// ReplaceBlockedIntervals replaces every interval of the given source with
// the new set in a single pipeline update, so a slow sync run can never
// interleave a partial write with a faster one. Intervals of other sources
// pass through untouched. When run is non-nil the sync-run record is written
// in the same transaction.
func (r *MongoSupplierRepo) ReplaceBlockedIntervals(id, source string, intervals []models.BlockedInterval, run *models.SyncRun) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if intervals == nil {
		intervals = []models.BlockedInterval{}
	}

	keepOthers := bson.D{{Key: "$filter", Value: bson.D{
		{Key: "input", Value: bson.D{{Key: "$ifNull", Value: bson.A{"$blockedIntervals", bson.A{}}}}},
		{Key: "as", Value: "bi"},
		{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$bi.source", source}}}},
	}}}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "blockedIntervals", Value: bson.D{
				{Key: "$concatArrays", Value: bson.A{keepOthers, intervals}},
			}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}

	replace := func(sc context.Context) error {
		result, err := r.coll.UpdateOne(sc, bson.M{"id": id}, pipeline)
		if err != nil {
			return fmt.Errorf("failed to replace %s intervals for supplier %s: %w", source, id, err)
		}
		if result.MatchedCount == 0 {
			return fmt.Errorf("supplier with id %s not found", id)
		}
		if run != nil {
			filter := bson.M{"supplierId": run.SupplierID, "provider": run.Provider}
			opts := options.Replace().SetUpsert(true)
			if _, err := r.syncColl.ReplaceOne(sc, filter, run, opts); err != nil {
				return fmt.Errorf("failed to record sync run for supplier %s: %w", id, err)
			}
		}
		return nil
	}

	session, err := database.MongoClient.StartSession()
	if err != nil {
		// Standalone mongod has no sessions; fall back to sequential writes.
		return replace(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, replace(sc)
	})
	return err
}

// DeleteSyncRun removes the sync-run record for a supplier+provider pair.
// Called on disconnect so the periodic sweep stops re-queueing the pair.
func (r *MongoSupplierRepo) DeleteSyncRun(supplierID, provider string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"supplierId": supplierID, "provider": provider}
	if _, err := r.syncColl.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete sync run for %s/%s: %w", supplierID, provider, err)
	}
	return nil
}
