package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"bookwell/database"
	"bookwell/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	services  *mongo.Collection
	staff     *mongo.Collection
	customers *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database(database.DBName)
	repo := &MongoCatalogRepo{
		services:  db.Collection("services"),
		staff:     db.Collection("staff"),
		customers: db.Collection("customers"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create catalog indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, coll := range []*mongo.Collection{r.services, r.staff, r.customers} {
		indexModels := []mongo.IndexModel{
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "tenantId", Value: 1}}},
		}
		if _, err := coll.Indexes().CreateMany(ctx, indexModels); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}
	}

	_, err := r.customers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tenantId", Value: 1}, {Key: "chatId", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create customer chat index: %w", err)
	}
	return nil
}

// ListServices returns the active services of a tenant, sorted by name.
func (r *MongoCatalogRepo) ListServices(ctx context.Context, tenantID string) ([]models.Service, error) {
	filter := bson.M{"tenantId": tenantID, "active": true}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.services.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// GetService retrieves a single service of a tenant.
func (r *MongoCatalogRepo) GetService(ctx context.Context, tenantID, id string) (*models.Service, error) {
	var s models.Service
	err := r.services.FindOne(ctx, bson.M{"id": id, "tenantId": tenantID}).Decode(&s)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &s, nil
}

// ListStaff returns the active staff members of a tenant, sorted by name.
func (r *MongoCatalogRepo) ListStaff(ctx context.Context, tenantID string) ([]models.Staff, error) {
	filter := bson.M{"tenantId": tenantID, "active": true}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.staff.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var members []models.Staff
	if err := cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	return members, nil
}

// GetStaff retrieves a single staff member of a tenant.
func (r *MongoCatalogRepo) GetStaff(ctx context.Context, tenantID, id string) (*models.Staff, error) {
	var m models.Staff
	err := r.staff.FindOne(ctx, bson.M{"id": id, "tenantId": tenantID}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff %s: %w", id, err)
	}
	return &m, nil
}

// GetStaffByEmail retrieves a staff member by console login email.
func (r *MongoCatalogRepo) GetStaffByEmail(ctx context.Context, tenantID, email string) (*models.Staff, error) {
	var m models.Staff
	err := r.staff.FindOne(ctx, bson.M{"email": email, "tenantId": tenantID}).Decode(&m)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff by email: %w", err)
	}
	return &m, nil
}

// GetCustomer retrieves a customer of a tenant.
func (r *MongoCatalogRepo) GetCustomer(ctx context.Context, tenantID, id string) (*models.Customer, error) {
	var c models.Customer
	err := r.customers.FindOne(ctx, bson.M{"id": id, "tenantId": tenantID}).Decode(&c)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch customer %s: %w", id, err)
	}
	return &c, nil
}

// GetOrCreateCustomerByChatID resolves a chat user to a customer,
// inserting a bare record on first contact.
func (r *MongoCatalogRepo) GetOrCreateCustomerByChatID(ctx context.Context, tenantID, chatID string) (*models.Customer, error) {
	var c models.Customer
	err := r.customers.FindOne(ctx, bson.M{"tenantId": tenantID, "chatId": chatID}).Decode(&c)
	if err == nil {
		return &c, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to fetch customer by chat id: %w", err)
	}

	now := time.Now()
	c = models.Customer{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		ChatID:    chatID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.customers.InsertOne(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create customer for chat %s: %w", chatID, err)
	}
	return &c, nil
}
