package repository

import (
	"context"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminRepository interface {
	// ClearOrgData removes every business record owned by the org and
	// returns the number of rows deleted per entity. Users, the org row
	// itself and audit logs are left in place.
	ClearOrgData(ctx context.Context, orgID uuid.UUID) (map[string]int64, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) ClearOrgData(ctx context.Context, orgID uuid.UUID) (map[string]int64, error) {
	db := GetDB(ctx, r.db)

	// Delete order respects references: dependents before their parents.
	targets := []struct {
		name  string
		model interface{}
	}{
		{"approvals", &model.Approval{}},
		{"stock_transactions", &model.StockTransaction{}},
		{"stock_availability", &model.StockAvailability{}},
		{"onboardings", &model.ClientOnboarding{}},
		{"assets", &model.Asset{}},
		{"employees", &model.Employee{}},
		{"contractors", &model.Contractor{}},
		{"clients", &model.Client{}},
		{"departments", &model.Department{}},
	}

	// Unscoped so previously soft-deleted rows are removed as well.
	counts := make(map[string]int64, len(targets))
	for _, target := range targets {
		result := db.Unscoped().Where("org_id = ?", orgID).Delete(target.model)
		if result.Error != nil {
			return nil, result.Error
		}
		counts[target.name] = result.RowsAffected
	}
	return counts, nil
}
