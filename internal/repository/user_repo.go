package repository

import (
	"context"
	"errors"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines data access for users, organizations and OTP codes.
// Every lookup is scoped by org except the signup/login paths that resolve
// the org first.
type UserRepository interface {
	CreateOrg(ctx context.Context, org *model.Organization) error
	GetOrgByID(ctx context.Context, orgID uuid.UUID) (*model.Organization, error)
	UpdateOrg(ctx context.Context, org *model.Organization) error

	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, orgID uuid.UUID) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, orgID, id uuid.UUID) error

	UpsertOTP(ctx context.Context, otp *model.OTPCode) error
	GetOTP(ctx context.Context, email string) (*model.OTPCode, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateOrg(ctx context.Context, org *model.Organization) error {
	return GetDB(ctx, r.db).Create(org).Error
}

func (r *userRepository) GetOrgByID(ctx context.Context, orgID uuid.UUID) (*model.Organization, error) {
	var org model.Organization
	if err := GetDB(ctx, r.db).First(&org, "id = ?", orgID).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *userRepository) UpdateOrg(ctx context.Context, org *model.Organization) error {
	return GetDB(ctx, r.db).Save(org).Error
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, orgID, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "id = ? AND org_id = ?", id, orgID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, orgID uuid.UUID, email string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "org_id = ? AND email = ?", orgID, email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, orgID uuid.UUID) ([]model.User, error) {
	var users []model.User
	if err := GetDB(ctx, r.db).Where("org_id = ?", orgID).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, orgID, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("org_id = ?", orgID).Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepository) UpsertOTP(ctx context.Context, otp *model.OTPCode) error {
	db := GetDB(ctx, r.db)
	var existing model.OTPCode
	err := db.First(&existing, "org_id = ? AND email = ?", otp.OrgID, otp.Email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(otp).Error
	}
	if err != nil {
		return err
	}
	existing.Code = otp.Code
	return db.Save(&existing).Error
}

func (r *userRepository) GetOTP(ctx context.Context, email string) (*model.OTPCode, error) {
	var otp model.OTPCode
	if err := GetDB(ctx, r.db).First(&otp, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}
