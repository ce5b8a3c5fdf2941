package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"notes-service/internal/domain/entities"
	"notes-service/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

// Create expects the password to be hashed by the caller.
func (r *UserRepository) Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userModel := toUserModel(user.GetUser())
	userModel.ID = 0

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return nil, err
	}

	// Read back the created user to ensure data integrity
	return r.FindById(ctx, userModel.ID)
}

func (r *UserRepository) FindById(ctx context.Context, id uint) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error) {
	userModel := toUserModel(user.GetUser())

	if err := r.db.WithContext(ctx).Save(&userModel).Error; err != nil {
		return nil, err
	}

	return r.FindById(ctx, userModel.ID)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&userModel), nil
}

func toUserModel(u *entities.User) UserModel {
	return UserModel{
		ID:             u.Id,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
		Username:       u.Username,
		Email:          u.Email,
		Password:       u.Password,
		FullName:       u.FullName,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
	}
}

func toUserEntity(m *UserModel) *entities.User {
	return &entities.User{
		Id:             m.ID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		Username:       m.Username,
		Email:          m.Email,
		Password:       m.Password,
		FullName:       m.FullName,
		ProfilePicture: m.ProfilePicture,
		Bio:            m.Bio,
	}
}
