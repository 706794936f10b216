package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"employee-portal/internal/apperror"
	"employee-portal/internal/model"
	"employee-portal/internal/repository"
	"employee-portal/internal/token"
	"employee-portal/internal/validation"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(id token.Identity) (string, time.Time, error)
}

type UserUsecase struct {
	repo     repository.UserRepository
	tokens   TokenIssuer
	hashCost int
}

func NewUserUsecase(repo repository.UserRepository, tokens TokenIssuer) *UserUsecase {
	return &UserUsecase{repo: repo, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,username,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

type CreateUserInput struct {
	Username string `json:"username" validate:"required,username,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=4,max=72"`
	Role     string `json:"role" validate:"required,oneof=user admin"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// Register creates a regular user account.
func (u *UserUsecase) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	return u.CreateUser(ctx, CreateUserInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Role:     string(model.RoleUser),
	})
}

// CreateUser validates and stores a new account with the given role.
func (u *UserUsecase) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.ToLower(strings.TrimSpace(in.Role))

	// 1. Shape of the input
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	// 2. Uniqueness, reported per field
	if err := u.ensureFree(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	// 3. Hash and store
	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.hashCost)
	if err != nil {
		return nil, apperror.Dependency("hash password", err)
	}
	user := &model.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		Role:     model.Role(in.Role),
	}
	if err := u.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Str("username", user.Username).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (u *UserUsecase) ensureFree(ctx context.Context, username, email string) error {
	if _, err := u.repo.FindByUsername(ctx, username); err == nil {
		return model.ErrUsernameTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}
	if _, err := u.repo.FindByEmail(ctx, email); err == nil {
		return model.ErrEmailTaken
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}
	return nil
}

// Login checks the password and issues a token. Unknown users and wrong
// passwords fail the same way.
func (u *UserUsecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := validation.Check(in); err != nil {
		return nil, err
	}

	user, err := u.repo.FindByUsername(ctx, strings.TrimSpace(in.Username))
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		log.Warn().Str("username", user.Username).Msg("login with wrong password")
		return nil, model.ErrInvalidCredentials
	}

	signed, exp, err := u.tokens.Issue(token.Identity{UserID: user.ID, Username: user.Username, Role: user.Role})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: signed, ExpiresAt: exp, User: user}, nil
}

func (u *UserUsecase) Me(ctx context.Context, id token.Identity) (*model.User, error) {
	return u.repo.FindByID(ctx, id.UserID)
}

// ListUsers lists accounts by role. An empty role means "user"; "all" lists everyone.
func (u *UserUsecase) ListUsers(ctx context.Context, role string) ([]model.User, error) {
	switch r := model.Role(strings.ToLower(strings.TrimSpace(role))); {
	case r == "":
		return u.repo.List(ctx, model.RoleUser)
	case r == "all":
		return u.repo.List(ctx, "")
	case r.Valid():
		return u.repo.List(ctx, r)
	}
	return nil, model.ErrInvalidRole
}

// ChangeRole sets a user's role. Admins cannot change their own role.
func (u *UserUsecase) ChangeRole(ctx context.Context, admin token.Identity, userID uint, role string) (*model.User, error) {
	if !admin.IsAdmin() {
		return nil, model.ErrAdminOnly
	}
	r := model.Role(strings.ToLower(strings.TrimSpace(role)))
	if !r.Valid() {
		return nil, model.ErrInvalidRole
	}
	if userID == admin.UserID {
		return nil, apperror.Forbidden("own_role", "you cannot change your own role")
	}
	if err := u.repo.UpdateRole(ctx, userID, r); err != nil {
		return nil, err
	}

	log.Info().Uint("admin_id", admin.UserID).Uint("user_id", userID).Str("role", string(r)).Msg("role changed")
	return u.repo.FindByID(ctx, userID)
}

// EnsureAdmin makes sure an admin account with the given username exists.
// It reports whether a new account was created.
func (u *UserUsecase) EnsureAdmin(ctx context.Context, username, email, password string) (*model.User, bool, error) {
	existing, err := u.repo.FindByUsername(ctx, username)
	if err == nil {
		if existing.Role != model.RoleAdmin {
			if err := u.repo.UpdateRole(ctx, existing.ID, model.RoleAdmin); err != nil {
				return nil, false, err
			}
			existing.Role = model.RoleAdmin
		}
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, false, err
	}

	user, err := u.CreateUser(ctx, CreateUserInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     string(model.RoleAdmin),
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
