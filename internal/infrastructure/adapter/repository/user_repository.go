package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	coreport "github.com/MrEisbear/Silk/internal/domain/port/core"
	"github.com/MrEisbear/Silk/internal/infrastructure/adapter/model"
)

// UserRepository implements the user port using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func userModelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:              m.ID,
		UUID:            m.UUID,
		Username:        m.Username,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		DiscordID:       m.DiscordID,
		AvatarURL:       m.AvatarURL,
		Role:            m.Role,
		IsBanned:        m.IsBanned,
		IsVerified:      m.IsVerified,
		LastSalaryClaim: m.LastSalaryClaim,
		CreatedAt:       m.CreatedAt,
	}
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any, lock bool) (*entity.User, error) {
	var m model.User
	db := r.db.WithContext(ctx)
	if lock {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	result := db.Where(query, arg).First(&m)
	if result.Error != nil {
		return nil, mapDatabaseError(r.errorClassifier, result.Error, errs.ErrUserNotFound)
	}
	return userModelToEntity(&m), nil
}

// GetByID retrieves a user by internal id
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	return r.getOne(ctx, "id = ?", id, false)
}

// GetByIDForUpdate retrieves a user holding a row lock
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	return r.getOne(ctx, "id = ?", id, true)
}

// GetByUUID retrieves a user by external UUID
func (r *UserRepository) GetByUUID(ctx context.Context, uuid string) (*entity.User, error) {
	return r.getOne(ctx, "uuid = ?", uuid, false)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, "username = ?", username, false)
}

// Create inserts a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	m := model.User{
		UUID:         user.UUID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		DiscordID:    user.DiscordID,
		AvatarURL:    user.AvatarURL,
		Role:         user.Role,
		IsBanned:     user.IsBanned,
		IsVerified:   user.IsVerified,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.CreatedAt,
	}
	result := r.db.WithContext(ctx).Create(&m)
	if result.Error != nil {
		r.logger.Error("Failed to create user", map[string]any{
			"username": user.Username,
			"error":    result.Error.Error(),
		})
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrUserNotFound)
	}
	user.ID = m.ID
	return nil
}

// Update persists profile, role, ban and cooldown changes
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":             user.Email,
			"password_hash":     user.PasswordHash,
			"discord_id":        user.DiscordID,
			"avatar_url":        user.AvatarURL,
			"role":              user.Role,
			"is_banned":         user.IsBanned,
			"is_verified":       user.IsVerified,
			"last_salary_claim": user.LastSalaryClaim,
			"updated_at":        r.timeProvider.Now(),
		})
	if result.Error != nil {
		return mapDatabaseError(r.errorClassifier, result.Error, errs.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
