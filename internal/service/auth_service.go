package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"backoffice/internal/apperror"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

// --- DTOs ---

type SignupDTO struct {
	OrgName     string `json:"org_name" binding:"required"`
	LogoURL     string `json:"logo_url"`
	AdminName   string `json:"admin_name" binding:"required"`
	AdminEmail  string `json:"admin_email" binding:"required,email"`
	AdminMobile string `json:"admin_mobile"`
	Password    string `json:"password" binding:"required,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyOTPDTO struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	// OTP is echoed back until a mail/SMS channel is wired up.
	OTP string `json:"otp,omitempty"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID     string `json:"id"`
	OrgID  string `json:"org_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// --- Interface ---

// AuthService covers tenant signup and the two-step OTP login flow:
// password check issues a code, code verification issues the JWT.
type AuthService interface {
	Signup(ctx context.Context, req SignupDTO) (*model.Organization, error)
	Login(ctx context.Context, req LoginDTO) (LoginResponse, error)
	VerifyOTP(ctx context.Context, req VerifyOTPDTO) (TokenResponse, error)
	Me(ctx context.Context, actor Actor) (UserResponse, error)
}

type authService struct {
	userRepo  repository.UserRepository
	txManager repository.TransactionManager
	jwtSecret []byte
}

func NewAuthService(userRepo repository.UserRepository, txManager repository.TransactionManager, jwtSecret []byte) AuthService {
	return &authService{userRepo: userRepo, txManager: txManager, jwtSecret: jwtSecret}
}

// --- Implementation ---

func (s *authService) Signup(ctx context.Context, req SignupDTO) (*model.Organization, error) {
	if existing, err := s.userRepo.FindByEmail(ctx, req.AdminEmail); err == nil && existing != nil {
		return nil, apperror.Conflict("email already registered")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	org := &model.Organization{
		Name:        req.OrgName,
		LogoURL:     req.LogoURL,
		AdminName:   req.AdminName,
		AdminEmail:  req.AdminEmail,
		AdminMobile: req.AdminMobile,
	}

	// Org and its Admin are created atomically; a half-created tenant is
	// never visible.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.userRepo.CreateOrg(txCtx, org); createErr != nil {
			return createErr
		}
		admin := &model.User{
			OrgID:        org.ID,
			Name:         req.AdminName,
			Email:        req.AdminEmail,
			Mobile:       req.AdminMobile,
			Role:         model.RoleAdmin,
			Status:       model.UserStatusActive,
			PasswordHash: string(hash),
		}
		return s.userRepo.Create(txCtx, admin)
	})
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (s *authService) Login(ctx context.Context, req LoginDTO) (LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, apperror.Unauthorized("invalid credentials")
		}
		return LoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return LoginResponse{}, apperror.Unauthorized("invalid credentials")
	}

	code, err := generateOTP()
	if err != nil {
		return LoginResponse{}, apperror.Internal(err)
	}

	otp := &model.OTPCode{
		OrgID: user.OrgID,
		Email: user.Email,
		Code:  code,
	}
	if err := s.userRepo.UpsertOTP(ctx, otp); err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{Message: "OTP sent", OTP: code}, nil
}

func (s *authService) VerifyOTP(ctx context.Context, req VerifyOTPDTO) (TokenResponse, error) {
	otp, err := s.userRepo.GetOTP(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TokenResponse{}, apperror.Unauthorized("invalid OTP")
		}
		return TokenResponse{}, err
	}
	if otp.Code != req.OTP {
		return TokenResponse{}, apperror.Unauthorized("invalid OTP")
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return TokenResponse{}, err
	}

	if !user.OTPVerified {
		user.OTPVerified = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return TokenResponse{}, err
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{Token: token, User: toUserResponse(*user)}, nil
}

func (s *authService) Me(ctx context.Context, actor Actor) (UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, actor.OrgID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, apperror.NotFound("user not found")
		}
		return UserResponse{}, err
	}
	return toUserResponse(*user), nil
}

func (s *authService) issueToken(user *model.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":    user.ID.String(),
		"email":  user.Email,
		"role":   user.Role,
		"org_id": user.OrgID.String(),
		"iat":    now.Unix(),
		"exp":    now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperror.Internal(err)
	}
	return signed, nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func toUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:     u.ID.String(),
		OrgID:  u.OrgID.String(),
		Name:   u.Name,
		Email:  u.Email,
		Mobile: u.Mobile,
		Role:   u.Role,
		Status: u.Status,
	}
}
