package supplierRepo

import (
	"fmt"
	"regexp"
	"time"

	"festivo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoSupplierRepo) GetByID(id string) (*models.Supplier, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var supplier models.Supplier
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&supplier); err != nil {
		return nil, fmt.Errorf("failed to fetch supplier with id %s: %w", id, err)
	}
	return &supplier, nil
}

func (r *MongoSupplierRepo) GetByEmail(email string) (*models.Supplier, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var supplier models.Supplier
	filter := bson.M{"profile.email": email}
	if err := r.coll.FindOne(ctx, filter).Decode(&supplier); err != nil {
		return nil, fmt.Errorf("failed to fetch supplier with email %s: %w", email, err)
	}
	return &supplier, nil
}

func (r *MongoSupplierRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Supplier, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(projection)
	var supplier models.Supplier
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&supplier); err != nil {
		return nil, fmt.Errorf("failed to fetch supplier with id %s: %w", id, err)
	}
	return &supplier, nil
}

// GetByCategory returns active suppliers in the given category, excluding
// the supplier with excludeID. Used by replacement resolution.
func (r *MongoSupplierRepo) GetByCategory(category, excludeID string) ([]models.Supplier, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"profile.category": category,
		"id":               bson.M{"$ne": excludeID},
		"profile.status":   bson.M{"$ne": "inactive"},
	}
	opts := options.Find().SetSort(bson.D{{Key: "profile.rating", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve suppliers for category %s: %w", category, err)
	}
	defer cursor.Close(ctx)

	var suppliers []models.Supplier
	for cursor.Next(ctx) {
		var s models.Supplier
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, nil
}

// GetBySubscriptionChannel resolves the supplier whose calendar connection
// owns the given notification channel. Google subscription IDs are stored as
// "channelID/resourceID".
func (r *MongoSupplierRepo) GetBySubscriptionChannel(channelID string) (*models.Supplier, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"calendarConnection.subscriptionId": bson.M{
		"$regex": "^" + regexp.QuoteMeta(channelID) + "(/|$)",
	}}
	var supplier models.Supplier
	if err := r.coll.FindOne(ctx, filter).Decode(&supplier); err != nil {
		return nil, fmt.Errorf("failed to fetch supplier for channel %s: %w", channelID, err)
	}
	return &supplier, nil
}

// GetSecondaryListings returns the themed listings that inherit the primary
// supplier's calendar connection.
func (r *MongoSupplierRepo) GetSecondaryListings(primaryID string) ([]models.Supplier, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"primarySupplierId":  primaryID,
		"inheritsConnection": true,
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve secondary listings for %s: %w", primaryID, err)
	}
	defer cursor.Close(ctx)

	var suppliers []models.Supplier
	for cursor.Next(ctx) {
		var s models.Supplier
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, nil
}
