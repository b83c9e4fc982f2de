package service

import (
	"context"
	"encoding/json"
	"errors"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateUserDTO struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role" binding:"required,oneof=Admin Director Staff"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateUserDTO struct {
	Name   *string `json:"name"`
	Mobile *string `json:"mobile"`
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

type UpdateOrgDTO struct {
	Name        *string `json:"name"`
	LogoURL     *string `json:"logo_url"`
	AdminMobile *string `json:"admin_mobile"`
}

// --- Interface ---

// UserService manages org members and tenant settings. All operations
// require the Admin role; the Admin account itself cannot be demoted or
// removed.
type UserService interface {
	Create(ctx context.Context, actor Actor, req CreateUserDTO) (UserResponse, error)
	List(ctx context.Context, actor Actor) ([]UserResponse, error)
	Get(ctx context.Context, actor Actor, userID string) (UserResponse, error)
	Update(ctx context.Context, actor Actor, userID string, req UpdateUserDTO) (UserResponse, error)
	Delete(ctx context.Context, actor Actor, userID string) error

	GetOrg(ctx context.Context, actor Actor) (*model.Organization, error)
	UpdateOrg(ctx context.Context, actor Actor, req UpdateOrgDTO) (*model.Organization, error)
}

type userService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditRepository
}

func NewUserService(userRepo repository.UserRepository, auditRepo repository.AuditRepository) UserService {
	return &userService{userRepo: userRepo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *userService) Create(ctx context.Context, actor Actor, req CreateUserDTO) (UserResponse, error) {
	if actor.Role != model.RoleAdmin {
		return UserResponse{}, apperror.Forbidden("only Admins can manage users")
	}

	if existing, err := s.userRepo.GetByEmail(ctx, actor.OrgID, req.Email); err == nil && existing != nil {
		return UserResponse{}, apperror.Conflict("email already in use")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, apperror.Internal(err)
	}

	user := &model.User{
		OrgID:        actor.OrgID,
		Name:         req.Name,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Role:         req.Role,
		Status:       model.UserStatusActive,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return UserResponse{}, apperror.Conflict("email already in use")
		}
		return UserResponse{}, err
	}

	s.audit(ctx, actor, model.ActionCreateUser, user.ID.String(), user.Name, map[string]interface{}{"role": user.Role})
	return toUserResponse(*user), nil
}

func (s *userService) List(ctx context.Context, actor Actor) ([]UserResponse, error) {
	if actor.Role != model.RoleAdmin {
		return nil, apperror.Forbidden("only Admins can manage users")
	}
	users, err := s.userRepo.List(ctx, actor.OrgID)
	if err != nil {
		return nil, err
	}
	result := make([]UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, toUserResponse(u))
	}
	return result, nil
}

func (s *userService) Get(ctx context.Context, actor Actor, userID string) (UserResponse, error) {
	if actor.Role != model.RoleAdmin {
		return UserResponse{}, apperror.Forbidden("only Admins can manage users")
	}
	user, err := s.find(ctx, actor.OrgID, userID)
	if err != nil {
		return UserResponse{}, err
	}
	return toUserResponse(*user), nil
}

func (s *userService) Update(ctx context.Context, actor Actor, userID string, req UpdateUserDTO) (UserResponse, error) {
	if actor.Role != model.RoleAdmin {
		return UserResponse{}, apperror.Forbidden("only Admins can manage users")
	}
	user, err := s.find(ctx, actor.OrgID, userID)
	if err != nil {
		return UserResponse{}, err
	}

	if req.Role != nil && *req.Role != user.Role {
		if user.Role == model.RoleAdmin {
			return UserResponse{}, apperror.InvalidState("the Admin account cannot change role")
		}
		switch *req.Role {
		case model.RoleDirector, model.RoleStaff:
			user.Role = *req.Role
		default:
			return UserResponse{}, apperror.Validation("role must be Director or Staff")
		}
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Mobile != nil {
		user.Mobile = *req.Mobile
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return UserResponse{}, err
	}
	s.audit(ctx, actor, model.ActionUpdateUser, user.ID.String(), user.Name, nil)
	return toUserResponse(*user), nil
}

func (s *userService) Delete(ctx context.Context, actor Actor, userID string) error {
	if actor.Role != model.RoleAdmin {
		return apperror.Forbidden("only Admins can manage users")
	}
	user, err := s.find(ctx, actor.OrgID, userID)
	if err != nil {
		return err
	}
	if user.Role == model.RoleAdmin {
		return apperror.InvalidState("the Admin account cannot be deleted")
	}
	if err := s.userRepo.Delete(ctx, actor.OrgID, user.ID); err != nil {
		return err
	}
	s.audit(ctx, actor, model.ActionDeleteUser, user.ID.String(), user.Name, nil)
	return nil
}

func (s *userService) GetOrg(ctx context.Context, actor Actor) (*model.Organization, error) {
	org, err := s.userRepo.GetOrgByID(ctx, actor.OrgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("organization not found")
		}
		return nil, err
	}
	return org, nil
}

func (s *userService) UpdateOrg(ctx context.Context, actor Actor, req UpdateOrgDTO) (*model.Organization, error) {
	if actor.Role != model.RoleAdmin {
		return nil, apperror.Forbidden("only Admins can update organization settings")
	}
	org, err := s.GetOrg(ctx, actor)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.LogoURL != nil {
		org.LogoURL = *req.LogoURL
	}
	if req.AdminMobile != nil {
		org.AdminMobile = *req.AdminMobile
	}
	if err := s.userRepo.UpdateOrg(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *userService) find(ctx context.Context, orgID uuid.UUID, userID string) (*model.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.Validation("invalid user id")
	}
	user, err := s.userRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) audit(ctx context.Context, actor Actor, action, entityID, entityName string, details map[string]interface{}) {
	payload, _ := json.Marshal(details)
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		OrgID:      actor.OrgID,
		UserID:     &actor.UserID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	})
}
