package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListByDay returns all live bookings of a tenant on the given date,
// ordered by start time.
func (r *MongoBookingRepo) ListByDay(ctx context.Context, tenantID, date string) ([]models.Booking, error) {
	filter := notDeleted(bson.M{"tenantId": tenantID, "date": date})
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// ListRemindable returns non-terminal bookings on date starting inside
// [startMin, endMin) whose reminder marker is still unset.
func (r *MongoBookingRepo) ListRemindable(ctx context.Context, tenantID, date string, startMin, endMin int) ([]models.Booking, error) {
	filter := notDeleted(bson.M{
		"tenantId":       tenantID,
		"date":           date,
		"start":          bson.M{"$gte": startMin, "$lt": endMin},
		"status":         bson.M{"$in": activeStatuses},
		"reminderSentAt": bson.M{"$exists": false},
	})

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query remindable bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode remindable bookings: %w", err)
	}
	return bookings, nil
}

// MarkReminderSent sets the reminder marker only when it is still
// unset, so a later scheduler run can never re-send for the same booking.
func (r *MongoBookingRepo) MarkReminderSent(ctx context.Context, tenantID, id string, at time.Time) (bool, error) {
	filter := notDeleted(bson.M{
		"id":             id,
		"tenantId":       tenantID,
		"reminderSentAt": bson.M{"$exists": false},
	})
	update := bson.M{"$set": bson.M{"reminderSentAt": at, "updatedAt": at}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder sent for %s: %w", id, err)
	}
	return res.ModifiedCount == 1, nil
}

// CountOverlapping counts active bookings of the same staff member on
// the same date whose [start,end) interval intersects the given one.
func (r *MongoBookingRepo) CountOverlapping(ctx context.Context, tenantID, staffID, date string, start, end int, excludeID string) (int, error) {
	return r.countOverlapping(ctx, tenantID, staffID, date, start, end, excludeID)
}

func (r *MongoBookingRepo) countOverlapping(ctx context.Context, tenantID, staffID, date string, start, end int, excludeID string) (int, error) {
	filter := notDeleted(bson.M{
		"tenantId": tenantID,
		"staffId":  staffID,
		"date":     date,
		"start":    bson.M{"$lt": end},
		"end":      bson.M{"$gt": start},
		"status":   bson.M{"$in": activeStatuses},
	})
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("overlap count failed: %w", err)
	}
	return int(n), nil
}
