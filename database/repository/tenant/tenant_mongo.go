package tenantRepo

import (
	"context"
	"fmt"
	"time"

	"bookwell/database"
	"bookwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTenantRepo implements TenantRepository using MongoDB.
type MongoTenantRepo struct {
	coll *mongo.Collection
}

// NewMongoTenantRepo creates a new instance of TenantRepository using MongoDB.
func NewMongoTenantRepo() TenantRepository {
	coll := database.MongoClient.Database(database.DBName).Collection("tenants")
	repo := &MongoTenantRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create tenant indexes: %v\n", err)
	}
	return repo
}

func (r *MongoTenantRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "enableBookingReminder", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a tenant by its unique ID.
func (r *MongoTenantRepo) GetByID(ctx context.Context, id string) (*models.Tenant, error) {
	var t models.Tenant
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch tenant %s: %w", id, err)
	}
	return &t, nil
}

// ListReminderEnabled returns all tenants with booking reminders turned on.
func (r *MongoTenantRepo) ListReminderEnabled(ctx context.Context) ([]models.Tenant, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"enableBookingReminder": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list reminder-enabled tenants: %w", err)
	}
	defer cursor.Close(ctx)

	var tenants []models.Tenant
	if err := cursor.All(ctx, &tenants); err != nil {
		return nil, fmt.Errorf("failed to decode tenants: %w", err)
	}
	return tenants, nil
}

// UpdateReminderSettings rewrites the reminder configuration of a tenant.
func (r *MongoTenantRepo) UpdateReminderSettings(ctx context.Context, tenantID string, s models.ReminderSettings) error {
	update := bson.M{"$set": bson.M{
		"enableBookingReminder": s.EnableBookingReminder,
		"reminderHoursBefore":   s.ReminderHoursBefore,
		"enableSmsReminder":     s.EnableSMSReminder,
		"updatedAt":             time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": tenantID}, update)
	if err != nil {
		return fmt.Errorf("failed to update reminder settings for %s: %w", tenantID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
