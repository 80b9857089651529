package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByLogin(ctx context.Context, login string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, excludeID int64) (bool, error)
	List(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id int64, changes map[string]interface{}) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
	CountAdmins(ctx context.Context) (int64, error)
}

// Claims is the JWT payload issued on login.
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo UserRepository
	secret   []byte
	expiry   time.Duration
	now      func() time.Time
}

func NewAuthService(userRepo UserRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   []byte(secret),
		expiry:   expiry,
		now:      time.Now,
	}
}

// Login authenticates by username or email. Unknown accounts, disabled
// accounts and bad passwords all collapse into the same error so the
// response does not leak which part failed.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	if req.Login == "" || req.Password == "" {
		return nil, &ValidationError{Errors: []string{"Nom d'utilisateur et mot de passe requis"}}
	}

	user, err := s.userRepo.GetByLogin(ctx, req.Login)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}

func (s *AuthService) GenerateToken(user *model.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken validates the signature and expiry and returns the claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// Register creates an account. Hashing and permission defaulting happen
// here, explicitly, not in a persistence hook: admins always get the
// full set, everyone else gets the defaults unless the caller supplied
// a custom set.
func (s *AuthService) Register(ctx context.Context, req model.UserCreateRequest) (*model.User, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}

	perms := model.DefaultUserPermissions()
	if role == model.RoleAdmin {
		perms = model.AdminPermissions()
	} else if req.Permissions != nil {
		perms = *req.Permissions
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.userRepo.Create(ctx, &model.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hash),
		Role:        role,
		Permissions: perms,
		IsActive:    true,
	})
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// UpdateUser applies an admin edit. Role and permission changes are
// gated by the caller; a non-admin can only reach this for their own
// row with role and permissions already stripped.
func (s *AuthService) UpdateUser(ctx context.Context, id int64, req model.UserUpdateRequest) (*model.User, error) {
	changes := map[string]interface{}{}

	if req.Email != nil {
		exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, "", *req.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateUser
		}
		changes["email"] = *req.Email
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, &ValidationError{Errors: []string{"Mot de passe trop court (6 caractères minimum)"}}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		changes["password"] = string(hash)
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, &ValidationError{Errors: []string{"Rôle invalide"}}
		}
		changes["role"] = string(*req.Role)
		if *req.Role == model.RoleAdmin && req.Permissions == nil {
			changes["permissions"] = model.AdminPermissions()
		}
	}
	if req.Permissions != nil {
		changes["permissions"] = *req.Permissions
	}
	if req.IsActive != nil {
		changes["is_active"] = *req.IsActive
	}

	user, err := s.userRepo.Update(ctx, id, changes)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// DeleteUser removes an account. Deleting yourself is rejected so the
// last admin cannot lock everyone out by accident.
func (s *AuthService) DeleteUser(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrSelfDelete
	}
	err := s.userRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ChangePassword verifies the current password before setting the new
// one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if current == "" || next == "" {
		return &ValidationError{Errors: []string{"Ancien et nouveau mot de passe requis"}}
	}
	if len(next) < 6 {
		return &ValidationError{Errors: []string{"Mot de passe trop court (6 caractères minimum)"}}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.userRepo.Update(ctx, userID, map[string]interface{}{"password": string(hash)})
	return err
}
