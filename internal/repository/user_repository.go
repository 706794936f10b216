package repository

import (
	"context"

	"employee-portal/internal/apperror"
	"employee-portal/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, role model.Role) ([]model.User, error)
	UpdateRole(ctx context.Context, id uint, role model.Role) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if !isDuplicateKey(err) {
		return apperror.Dependency("create user", err)
	}

	// Translated duplicate errors do not say which index fired
	var n int64
	if cerr := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", user.Username).Count(&n).Error; cerr == nil && n > 0 {
		return model.ErrUsernameTaken
	}
	return model.ErrEmailTaken
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) first(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&user).Error
	if isNotFound(err) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, apperror.Dependency("find user", err)
	}
	return &user, nil
}

// List returns users with the given role; an empty role lists everyone.
func (r *userRepository) List(ctx context.Context, role model.Role) ([]model.User, error) {
	var users []model.User
	q := r.db.WithContext(ctx).Order("id asc")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, apperror.Dependency("list users", err)
	}
	return users, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id uint, role model.Role) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return apperror.Dependency("update role", res.Error)
	}
	if res.RowsAffected == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
