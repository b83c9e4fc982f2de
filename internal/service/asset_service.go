package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateAssetDTO struct {
	AssetType            string          `json:"asset_type" binding:"required"`
	Model                string          `json:"model"`
	SerialNumber         string          `json:"serial_number"`
	PurchaseDate         string          `json:"purchase_date" binding:"required"`
	Vendor               string          `json:"vendor"`
	ValueExGST           decimal.Decimal `json:"value_ex_gst"`
	WarrantyPeriodMonths int             `json:"warranty_period_months" binding:"required,gt=0"`
	AllotedTo            string          `json:"alloted_to"`
	Email                string          `json:"email"`
	Department           string          `json:"department"`
}

type UpdateAssetDTO struct {
	AssetType            *string          `json:"asset_type"`
	Model                *string          `json:"model"`
	SerialNumber         *string          `json:"serial_number"`
	PurchaseDate         *string          `json:"purchase_date"`
	Vendor               *string          `json:"vendor"`
	ValueExGST           *decimal.Decimal `json:"value_ex_gst"`
	WarrantyPeriodMonths *int             `json:"warranty_period_months"`
	AllotedTo            *string          `json:"alloted_to"`
	Email                *string          `json:"email"`
	Department           *string          `json:"department"`
}

// --- Interface ---

// AssetService manages company assets. Warranty status is derived from
// purchase date and warranty period on every read.
type AssetService interface {
	Create(ctx context.Context, actor Actor, req CreateAssetDTO) (*model.Asset, error)
	Get(ctx context.Context, actor Actor, assetID string) (*model.Asset, error)
	List(ctx context.Context, actor Actor, department string) ([]model.Asset, error)
	Update(ctx context.Context, actor Actor, assetID string, req UpdateAssetDTO) (*model.Asset, error)
	Delete(ctx context.Context, actor Actor, assetID string) error
}

type assetService struct {
	assetRepo repository.AssetRepository
	auditRepo repository.AuditRepository
	now       func() time.Time
}

func NewAssetService(assetRepo repository.AssetRepository, auditRepo repository.AuditRepository) AssetService {
	return &assetService{assetRepo: assetRepo, auditRepo: auditRepo, now: time.Now}
}

// --- Implementation ---

func (s *assetService) Create(ctx context.Context, actor Actor, req CreateAssetDTO) (*model.Asset, error) {
	purchase, err := parseDate(req.PurchaseDate)
	if err != nil {
		return nil, apperror.Validation("invalid purchase_date, expected YYYY-MM-DD")
	}

	asset := &model.Asset{
		OrgID:                actor.OrgID,
		AssetType:            req.AssetType,
		Model:                req.Model,
		SerialNumber:         req.SerialNumber,
		PurchaseDate:         purchase,
		Vendor:               req.Vendor,
		ValueExGST:           req.ValueExGST,
		WarrantyPeriodMonths: req.WarrantyPeriodMonths,
		AllotedTo:            req.AllotedTo,
		Email:                req.Email,
		Department:           req.Department,
		WarrantyStatus:       DeriveWarrantyStatus(purchase, req.WarrantyPeriodMonths, s.now()),
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionCreateAsset, asset.ID.String(), asset.AssetType)
	return asset, nil
}

func (s *assetService) Get(ctx context.Context, actor Actor, assetID string) (*model.Asset, error) {
	asset, err := s.find(ctx, actor.OrgID, assetID)
	if err != nil {
		return nil, err
	}
	s.refreshDerived(ctx, asset)
	return asset, nil
}

func (s *assetService) List(ctx context.Context, actor Actor, department string) ([]model.Asset, error) {
	assets, err := s.assetRepo.List(ctx, actor.OrgID, department)
	if err != nil {
		return nil, err
	}
	for i := range assets {
		s.refreshDerived(ctx, &assets[i])
	}
	return assets, nil
}

func (s *assetService) Update(ctx context.Context, actor Actor, assetID string, req UpdateAssetDTO) (*model.Asset, error) {
	asset, err := s.find(ctx, actor.OrgID, assetID)
	if err != nil {
		return nil, err
	}

	if req.PurchaseDate != nil {
		purchase, parseErr := parseDate(*req.PurchaseDate)
		if parseErr != nil {
			return nil, apperror.Validation("invalid purchase_date, expected YYYY-MM-DD")
		}
		asset.PurchaseDate = purchase
	}
	if req.WarrantyPeriodMonths != nil {
		if *req.WarrantyPeriodMonths <= 0 {
			return nil, apperror.Validation("warranty_period_months must be positive")
		}
		asset.WarrantyPeriodMonths = *req.WarrantyPeriodMonths
	}
	if req.ValueExGST != nil {
		asset.ValueExGST = *req.ValueExGST
	}
	applyString(&asset.AssetType, req.AssetType)
	applyString(&asset.Model, req.Model)
	applyString(&asset.SerialNumber, req.SerialNumber)
	applyString(&asset.Vendor, req.Vendor)
	applyString(&asset.AllotedTo, req.AllotedTo)
	applyString(&asset.Email, req.Email)
	applyString(&asset.Department, req.Department)

	asset.WarrantyStatus = DeriveWarrantyStatus(asset.PurchaseDate, asset.WarrantyPeriodMonths, s.now())

	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return nil, err
	}
	s.audit(ctx, actor, model.ActionUpdateAsset, asset.ID.String(), asset.AssetType)
	return asset, nil
}

func (s *assetService) Delete(ctx context.Context, actor Actor, assetID string) error {
	asset, err := s.find(ctx, actor.OrgID, assetID)
	if err != nil {
		return err
	}
	if err := s.assetRepo.Delete(ctx, actor.OrgID, asset.ID); err != nil {
		return err
	}
	s.audit(ctx, actor, model.ActionDeleteAsset, asset.ID.String(), asset.AssetType)
	return nil
}

func (s *assetService) refreshDerived(ctx context.Context, asset *model.Asset) {
	derived := DeriveWarrantyStatus(asset.PurchaseDate, asset.WarrantyPeriodMonths, s.now())
	if asset.WarrantyStatus != derived {
		asset.WarrantyStatus = derived
		if err := s.assetRepo.Update(ctx, asset); err != nil {
			log.Printf("Failed to persist derived warranty status for asset %s: %v", asset.ID, err)
		}
	}
}

func (s *assetService) find(ctx context.Context, orgID uuid.UUID, assetID string) (*model.Asset, error) {
	id, err := uuid.Parse(assetID)
	if err != nil {
		return nil, apperror.Validation("invalid asset id")
	}
	asset, err := s.assetRepo.FindByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("asset not found")
		}
		return nil, err
	}
	return asset, nil
}

func (s *assetService) audit(ctx context.Context, actor Actor, action, entityID, entityName string) {
	payload, _ := json.Marshal(map[string]interface{}{"asset_type": entityName})
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		OrgID:      actor.OrgID,
		UserID:     &actor.UserID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}
