package supplierRepo

import (
	"fmt"
	"time"

	"festivo/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new supplier document.
func (r *MongoSupplierRepo) Create(supplier *models.Supplier) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, supplier)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

// Update modifies an existing supplier document.
func (r *MongoSupplierRepo) Update(supplier *models.Supplier) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": supplier.ID}
	update := bson.M{"$set": supplier}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update supplier with id %s: %w", supplier.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("supplier with id %s not found", supplier.ID)
	}
	return nil
}

// Delete removes a supplier document by its ID.
func (r *MongoSupplierRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete supplier with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("supplier with id %s not found", id)
	}
	return nil
}

// UpdateSet patches a supplier document with a $set update.
func (r *MongoSupplierRepo) UpdateSet(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update supplier with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("supplier with id %s not found", id)
	}
	return nil
}

// UpdateCalendarConnection stores or clears the supplier's calendar connection.
func (r *MongoSupplierRepo) UpdateCalendarConnection(id string, conn *models.CalendarConnection) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var update bson.M
	if conn == nil {
		update = bson.M{"$unset": bson.M{"calendarConnection": ""}}
	} else {
		update = bson.M{"$set": bson.M{"calendarConnection": conn}}
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update calendar connection for supplier %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("supplier with id %s not found", id)
	}
	return nil
}
