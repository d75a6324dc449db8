package syncrunRepo

import (
	"context"
	"fmt"
	"time"

	"festivo/database"
	"festivo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSyncRunRepo implements SyncRunRepository using MongoDB.
type MongoSyncRunRepo struct {
	coll *mongo.Collection
}

// NewMongoSyncRunRepo creates a new instance of SyncRunRepository using MongoDB.
func NewMongoSyncRunRepo() SyncRunRepository {
	coll := database.MongoClient.Database("festivo").Collection("sync_runs")
	return &MongoSyncRunRepo{coll: coll}
}

func (r *MongoSyncRunRepo) GetLast(supplierID, provider string) (*models.SyncRun, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var run models.SyncRun
	filter := bson.M{"supplierId": supplierID, "provider": provider}
	err := r.coll.FindOne(ctx, filter).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sync run for %s/%s: %w", supplierID, provider, err)
	}
	return &run, nil
}

// ListStale returns runs older than cutoffHours, used by the periodic
// re-sync sweep.
func (r *MongoSyncRunRepo) ListStale(cutoffHours int) ([]models.SyncRun, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-time.Duration(cutoffHours) * time.Hour)
	cursor, err := r.coll.Find(ctx, bson.M{"syncedAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return nil, fmt.Errorf("failed to list stale sync runs: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []models.SyncRun
	for cursor.Next(ctx) {
		var run models.SyncRun
		if err := cursor.Decode(&run); err != nil {
			return nil, fmt.Errorf("failed to decode sync run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}
