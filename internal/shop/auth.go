package shop

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/eazybuy/storefront/internal/domain"
	"github.com/eazybuy/storefront/pkg/common"
)

const defaultTokenExpireHours = 720

// AuthService registers users, verifies credentials and issues opaque
// bearer tokens stored in sys_user_token.
type AuthService struct {
	db       *gorm.DB
	settings Settings
}

func NewAuthService(db *gorm.DB, settings Settings) *AuthService {
	return &AuthService{db: db, settings: settings}
}

func (s *AuthService) tokenTTL() time.Duration {
	hours := s.settings.GetSettingsInt64Value("auth", "token_expire_hours")
	if hours <= 0 {
		hours = defaultTokenExpireHours
	}
	return time.Duration(hours) * time.Hour
}

// RegisterInput is the registration payload. Password2 must repeat the
// password; validation failures come back as FieldErrors.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
	FirstName string
	LastName  string
}

// Register creates a user and issues a token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.SysUser, *domain.SysUserToken, error) {
	db := s.db.WithContext(ctx)

	fields := FieldErrors{}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		fields["username"] = "Username is required"
	}
	if len(in.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters"
	} else if in.Password != in.Password2 {
		fields["password"] = "Passwords must match."
	}
	if len(fields) > 0 {
		return nil, nil, fields
	}

	var count int64
	db.Model(&domain.SysUser{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, nil, FieldErrors{"username": "Username already taken"}
	}

	hashed, err := common.HashPassword(in.Password)
	if err != nil {
		return nil, nil, errors.Wrap(err, "hash password")
	}

	user := domain.SysUser{
		ID:        common.UUIDint64(),
		Username:  username,
		Email:     strings.TrimSpace(in.Email),
		Password:  hashed,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		LastLogin: time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, nil, errors.Wrap(err, "create user")
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, token, nil
}

// Login verifies credentials and returns the user with a token. Unknown
// username and wrong password fail identically so usernames cannot be
// enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.SysUser, *domain.SysUserToken, error) {
	db := s.db.WithContext(ctx)

	var user domain.SysUser
	err := db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, errors.Wrap(err, "query user")
	}
	if !common.CheckPassword(user.Password, password) {
		return nil, nil, ErrInvalidCredentials
	}

	db.Model(&domain.SysUser{}).Where("id = ?", user.ID).Update("last_login", time.Now())

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return &user, token, nil
}

// issueToken reuses the user's live token or mints a fresh one. Expired
// tokens are replaced.
func (s *AuthService) issueToken(ctx context.Context, userID int64) (*domain.SysUserToken, error) {
	db := s.db.WithContext(ctx)

	var token domain.SysUserToken
	err := db.Where("user_id = ?", userID).First(&token).Error
	switch {
	case err == nil && token.ExpiresAt.After(time.Now()):
		return &token, nil
	case err == nil:
		if err := db.Delete(&domain.SysUserToken{}, token.ID).Error; err != nil {
			return nil, errors.Wrap(err, "delete expired token")
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errors.Wrap(err, "query token")
	}

	token = domain.SysUserToken{
		ID:        common.UUIDint64(),
		Key:       common.TokenKey(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.tokenTTL()),
		CreatedAt: time.Now(),
	}
	if err := db.Create(&token).Error; err != nil {
		return nil, errors.Wrap(err, "create token")
	}
	return &token, nil
}

// ResolveToken maps a presented token key to its user. Expired or unknown
// keys are rejected.
func (s *AuthService) ResolveToken(ctx context.Context, key string) (*domain.SysUser, error) {
	db := s.db.WithContext(ctx)

	var token domain.SysUserToken
	err := db.Where("key = ?", key).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, errors.Wrap(err, "query token")
	}
	if !token.ExpiresAt.After(time.Now()) {
		return nil, ErrTokenInvalid
	}

	var user domain.SysUser
	if err := db.Where("id = ?", token.UserID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, errors.Wrap(err, "query user")
	}
	return &user, nil
}

// Logout deletes the user's current token.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.SysUserToken{}).Error
	return errors.Wrap(err, "delete token")
}

// Profile returns the user's profile record.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.SysUser, error) {
	var user domain.SysUser
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, errors.Wrap(err, "query user")
	}
	return &user, nil
}

// ProfileUpdate carries partial profile edits; nil fields are untouched.
type ProfileUpdate struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
}

// UpdateProfile applies a partial update to non-credential fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, in ProfileUpdate) (*domain.SysUser, error) {
	db := s.db.WithContext(ctx)

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if in.Username != nil {
		username := strings.TrimSpace(*in.Username)
		if username == "" {
			return nil, FieldErrors{"username": "Username is required"}
		}
		if username != user.Username {
			var count int64
			db.Model(&domain.SysUser{}).Where("username = ? AND id != ?", username, userID).Count(&count)
			if count > 0 {
				return nil, FieldErrors{"username": "Username already taken"}
			}
			updates["username"] = username
		}
	}
	if in.Email != nil {
		updates["email"] = strings.TrimSpace(*in.Email)
	}
	if in.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}

	if err := db.Model(&domain.SysUser{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return s.Profile(ctx, userID)
}
