package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientFilter narrows client listings.
type ClientFilter struct {
	Status     string // Active / Churned, empty for all
	Department string // service name, empty for all
	SortBy     string
	SortDesc   bool
}

type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Client, error)
	List(ctx context.Context, orgID uuid.UUID, filter ClientFilter) ([]model.Client, error)
	ListActive(ctx context.Context, orgID uuid.UUID, department string) ([]model.Client, error)
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Create(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// sortableClientColumns whitelists sort keys against injection.
var sortableClientColumns = map[string]string{
	"name":         "name",
	"start_date":   "start_date",
	"end_date":     "end_date",
	"amount_inr":   "amount_inr",
	"service":      "service",
	"created_at":   "created_at",
	"sign_status":  "sign_status",
	"client_status": "client_status",
}

func (r *clientRepository) List(ctx context.Context, orgID uuid.UUID, filter ClientFilter) ([]model.Client, error) {
	query := GetDB(ctx, r.db).Where("org_id = ?", orgID)
	if filter.Status != "" {
		query = query.Where("client_status = ?", filter.Status)
	}
	if filter.Department != "" {
		query = query.Where("service = ?", filter.Department)
	}

	order := "created_at DESC"
	if col, ok := sortableClientColumns[filter.SortBy]; ok {
		order = col
		if filter.SortDesc {
			order += " DESC"
		}
	}

	var clients []model.Client
	if err := query.Order(order).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) ListActive(ctx context.Context, orgID uuid.UUID, department string) ([]model.Client, error) {
	query := GetDB(ctx, r.db).Where("org_id = ? AND client_status = ?", orgID, model.ClientStatusActive)
	if department != "" {
		query = query.Where("service = ?", department)
	}
	var clients []model.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Save(client).Error
}

func (r *clientRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("org_id = ?", orgID).Delete(&model.Client{}, "id = ?", id).Error
}
