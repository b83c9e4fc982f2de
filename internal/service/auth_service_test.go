package service

import (
	"context"
	"regexp"
	"testing"

	"backoffice/internal/apperror"
	"backoffice/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testJWTSecret = []byte("test-secret")

func newAuthFixture(t *testing.T) (AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	return NewAuthService(users, fakeTxManager{}, testJWTSecret), users
}

func signupOrg(t *testing.T, svc AuthService) *model.Organization {
	t.Helper()
	org, err := svc.Signup(context.Background(), SignupDTO{
		OrgName:    "Acme Agency",
		AdminName:  "Priya Shah",
		AdminEmail: "priya@acme.test",
		Password:   "correct horse",
	})
	require.NoError(t, err)
	return org
}

func TestSignupCreatesOrgAndAdmin(t *testing.T) {
	svc, users := newAuthFixture(t)

	org := signupOrg(t, svc)
	assert.Equal(t, "Acme Agency", org.Name)

	admin, err := users.FindByEmail(context.Background(), "priya@acme.test")
	require.NoError(t, err)
	assert.Equal(t, org.ID, admin.OrgID)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("correct horse")))
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	signupOrg(t, svc)

	_, err := svc.Signup(context.Background(), SignupDTO{
		OrgName:    "Copycat",
		AdminName:  "Someone Else",
		AdminEmail: "priya@acme.test",
		Password:   "another pass",
	})
	assertAppCode(t, err, apperror.CodeConflict)
}

func TestLoginIssuesOTP(t *testing.T) {
	svc, _ := newAuthFixture(t)
	signupOrg(t, svc)

	resp, err := svc.Login(context.Background(), LoginDTO{Email: "priya@acme.test", Password: "correct horse"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), resp.OTP)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	signupOrg(t, svc)

	_, err := svc.Login(context.Background(), LoginDTO{Email: "priya@acme.test", Password: "wrong"})
	assertAppCode(t, err, apperror.CodeUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), LoginDTO{Email: "nobody@acme.test", Password: "whatever"})
	assertAppCode(t, err, apperror.CodeUnauthorized)
}

func TestVerifyOTPIssuesToken(t *testing.T) {
	svc, users := newAuthFixture(t)
	org := signupOrg(t, svc)

	login, err := svc.Login(context.Background(), LoginDTO{Email: "priya@acme.test", Password: "correct horse"})
	require.NoError(t, err)

	resp, err := svc.VerifyOTP(context.Background(), VerifyOTPDTO{Email: "priya@acme.test", OTP: login.OTP})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)

	token, err := jwt.Parse(resp.Token, func(tk *jwt.Token) (interface{}, error) {
		return testJWTSecret, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, resp.User.ID, claims["sub"])
	assert.Equal(t, org.ID.String(), claims["org_id"])
	assert.Equal(t, model.RoleAdmin, claims["role"])

	user, err := users.FindByEmail(context.Background(), "priya@acme.test")
	require.NoError(t, err)
	assert.True(t, user.OTPVerified)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, _ := newAuthFixture(t)
	signupOrg(t, svc)

	_, err := svc.Login(context.Background(), LoginDTO{Email: "priya@acme.test", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.VerifyOTP(context.Background(), VerifyOTPDTO{Email: "priya@acme.test", OTP: "000000x"})
	assertAppCode(t, err, apperror.CodeUnauthorized)
}

func TestMe(t *testing.T) {
	svc, users := newAuthFixture(t)
	org := signupOrg(t, svc)

	admin, err := users.FindByEmail(context.Background(), "priya@acme.test")
	require.NoError(t, err)

	me, err := svc.Me(context.Background(), Actor{UserID: admin.ID, Role: admin.Role, OrgID: org.ID})
	require.NoError(t, err)
	assert.Equal(t, "priya@acme.test", me.Email)
	assert.Equal(t, model.RoleAdmin, me.Role)
}
