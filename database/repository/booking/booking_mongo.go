package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"bookwell/database"
	"bookwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// notDeleted narrows any filter to live documents.
func notDeleted(filter bson.M) bson.M {
	filter["deletedAt"] = bson.M{"$exists": false}
	return filter
}

var activeStatuses = bson.A{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusInProgress,
}

// CreateIfSlotFree inserts the booking after an overlap check against
// active bookings for the same staff, both inside one transaction so a
// racing writer for the same slot loses.
func (r *MongoBookingRepo) CreateIfSlotFree(ctx context.Context, b *models.Booking) error {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if b.StaffID != "" {
			n, err := r.countOverlapping(sc, b.TenantID, b.StaffID, b.Date, b.Start, b.End, "")
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrSlotTaken
			}
		}
		if _, err := r.coll.InsertOne(sc, b); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// UpdateIfSlotFree rewrites the booking under the same overlap guard,
// excluding the booking's own document from the check.
func (r *MongoBookingRepo) UpdateIfSlotFree(ctx context.Context, b *models.Booking) error {
	b.UpdatedAt = time.Now()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if b.StaffID != "" {
			n, err := r.countOverlapping(sc, b.TenantID, b.StaffID, b.Date, b.Start, b.End, b.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrSlotTaken
			}
		}
		filter := notDeleted(bson.M{"id": b.ID, "tenantId": b.TenantID})
		res, err := r.coll.ReplaceOne(sc, filter, b)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("replace booking failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSlotTaken || err == ErrNotFound {
			return err
		}
		return fmt.Errorf("booking update transaction failed: %w", err)
	}
	return nil
}

// GetByID retrieves a live booking by its tenant-scoped ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, tenantID, id string) (*models.Booking, error) {
	filter := notDeleted(bson.M{"id": id, "tenantId": tenantID})
	var b models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &b, nil
}

// GetByCancelToken resolves the opaque self-service token. Soft-deleted
// bookings behave exactly like unknown tokens.
func (r *MongoBookingRepo) GetByCancelToken(ctx context.Context, token string) (*models.Booking, error) {
	filter := notDeleted(bson.M{"cancelToken": token})
	var b models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&b); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to resolve cancel token: %w", err)
	}
	return &b, nil
}

// Update persists the booking without any slot check. Used for status
// transitions and note edits that leave the slot untouched.
func (r *MongoBookingRepo) Update(ctx context.Context, b *models.Booking) error {
	b.UpdatedAt = time.Now()
	filter := notDeleted(bson.M{"id": b.ID, "tenantId": b.TenantID})
	res, err := r.coll.ReplaceOne(ctx, filter, b)
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", b.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete stamps deletedAt, making the booking invisible to every
// lookup path including token resolution.
func (r *MongoBookingRepo) SoftDelete(ctx context.Context, tenantID, id, deletedBy string) error {
	now := time.Now()
	filter := notDeleted(bson.M{"id": id, "tenantId": tenantID})
	update := bson.M{"$set": bson.M{
		"deletedAt":      now,
		"updatedAt":      now,
		"lastModifiedBy": deletedBy,
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to soft-delete booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
