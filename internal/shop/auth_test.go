package shop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/eazybuy/storefront/internal/domain"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(db, staticSettings{"auth.token_expire_hours": 24})
}

func TestRegisterIssuesToken(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "supersecret",
		Password2: "supersecret",
		FirstName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "supersecret", user.Password, "password must be hashed")
	require.NotNil(t, token)
	assert.Len(t, token.Key, 40)
	assert.True(t, token.ExpiresAt.After(time.Now()))
}

func TestRegisterValidation(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Username: "bob", Password: "short", Password2: "short"})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "password")

	_, _, err = svc.Register(ctx, RegisterInput{Username: "bob", Password: "supersecret", Password2: "different1"})
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Passwords must match.", fields["password"])

	// a failed registration must not leave a user behind
	var count int64
	require.NoError(t, db.Model(&domain.SysUser{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "supersecret", Password2: "supersecret"})
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "supersecret", Password2: "supersecret"})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Username already taken", fields["username"])
}

func TestLoginWrongPasswordAndUnknownUserSameError(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "supersecret", Password2: "supersecret"})
	require.NoError(t, err)

	_, _, errWrongPass := svc.Login(ctx, "alice", "not-the-password")
	_, _, errNoUser := svc.Login(ctx, "nobody", "whatever")
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.EqualError(t, errWrongPass, errNoUser.Error())
}

func TestLoginReusesLiveToken(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, registered, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "supersecret", Password2: "supersecret"})
	require.NoError(t, err)

	_, fromLogin, err := svc.Login(ctx, "alice", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, registered.Key, fromLogin.Key)

	var count int64
	require.NoError(t, db.Model(&domain.SysUserToken{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginReplacesExpiredToken(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "supersecret", Password2: "supersecret"})
	require.NoError(t, err)

	err = db.Model(&domain.SysUserToken{}).Where("id = ?", token.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	_, fresh, err := svc.Login(ctx, "alice", "supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, token.Key, fresh.Key)

	var count int64
	require.NoError(t, db.Model(&domain.SysUserToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveToken(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "supersecret", Password2: "supersecret"})
	require.NoError(t, err)

	resolved, err := svc.ResolveToken(ctx, token.Key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, err = svc.ResolveToken(ctx, "not-a-real-key")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	err = db.Model(&domain.SysUserToken{}).Where("id = ?", token.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)
	_, err = svc.ResolveToken(ctx, token.Key)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "supersecret", Password2: "supersecret"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))
	_, err = svc.ResolveToken(ctx, token.Key)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// next login mints a new token
	_, fresh, err := svc.Login(ctx, "alice", "supersecret")
	require.NoError(t, err)
	assert.NotEqual(t, token.Key, fresh.Key)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegisterInput{
		Username: "alice", Email: "alice@example.com",
		Password: "supersecret", Password2: "supersecret",
		FirstName: "Alice", LastName: "Smith",
	})
	require.NoError(t, err)

	email := "new@example.com"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdate{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "alice", updated.Username)
	assert.Equal(t, "Alice", updated.FirstName)
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	db := setupDB(t)
	svc := newAuthService(db)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "supersecret", Password2: "supersecret"})
	require.NoError(t, err)
	bob, _, err := svc.Register(ctx, RegisterInput{Username: "bob", Password: "supersecret", Password2: "supersecret"})
	require.NoError(t, err)

	taken := "alice"
	_, err = svc.UpdateProfile(ctx, bob.ID, ProfileUpdate{Username: &taken})
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "Username already taken", fields["username"])
}
