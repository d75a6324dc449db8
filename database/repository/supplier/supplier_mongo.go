package supplierRepo

import (
	"context"
	"time"

	"festivo/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoSupplierRepo implements SupplierRepository using MongoDB.
type MongoSupplierRepo struct {
	coll     *mongo.Collection
	syncColl *mongo.Collection
}

// NewMongoSupplierRepo creates a new instance of SupplierRepository using MongoDB.
func NewMongoSupplierRepo() SupplierRepository {
	db := database.MongoClient.Database("festivo")
	repo := &MongoSupplierRepo{
		coll:     db.Collection("suppliers"),
		syncColl: db.Collection("sync_runs"),
	}
	if err := repo.ensureIndexes(); err != nil {
		zap.L().Warn("supplier repo: failed to create indexes", zap.Error(err))
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}
