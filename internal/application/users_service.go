package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
	"github.com/vecino/marketplace/pkg/cache"
	"github.com/vecino/marketplace/pkg/helpers"
)

const (
	userCachePrefix = "user"
	userListKey     = "all_users"
)

// UsersService owns the identity use cases: registration, credential
// checks, profile CRUD with cache-aside reads, and password changes.
type UsersService struct {
	Users  repository.UserRepository
	Cache  cache.Store
	Logger *logrus.Logger
}

func NewUsersService(users repository.UserRepository, store cache.Store, logger *logrus.Logger) *UsersService {
	return &UsersService{Users: users, Cache: store, Logger: logger}
}

// Register hashes the password and stores the new user. An empty role
// defaults to buyer.
func (s *UsersService) Register(ctx context.Context, email, name, password string, role entity.UserRole) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = entity.RoleBuyer
	}
	u := &entity.User{Email: email, Name: name, PasswordHash: hash, Role: role}
	created, err := s.Users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, created.ID)
	return created, nil
}

// Authenticate resolves the user by email and verifies the password.
// Both an unknown email and a wrong password yield ErrInvalidCredentials.
func (s *UsersService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// FindByID reads through the cache under "user_<id>".
func (s *UsersService) FindByID(ctx context.Context, id string) (*entity.User, error) {
	key := cache.EntityKey(userCachePrefix, id)
	var cached entity.User
	if ok, _ := s.Cache.Get(ctx, key, &cached); ok {
		return &cached, nil
	}
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "User", id)
	}
	if err := s.Cache.Set(ctx, key, u, cacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("cache set failed")
	}
	return u, nil
}

func (s *UsersService) FindAll(ctx context.Context, page *repository.Page) ([]*entity.User, error) {
	if page != nil {
		return s.Users.FindAll(ctx, page)
	}
	var cached []*entity.User
	if ok, _ := s.Cache.Get(ctx, userListKey, &cached); ok {
		return cached, nil
	}
	users, err := s.Users.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, userListKey, users, cacheTTL); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", userListKey).Warn("cache set failed")
	}
	return users, nil
}

func (s *UsersService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, translateNotFound(err, "User", email)
	}
	return u, nil
}

func (s *UsersService) FindByRole(ctx context.Context, role entity.UserRole, page *repository.Page) ([]*entity.User, error) {
	return s.Users.FindByRole(ctx, role, page)
}

func (s *UsersService) Update(ctx context.Context, id string, patch *entity.User) (*entity.User, error) {
	updated, err := s.Users.Update(ctx, id, patch)
	if err != nil {
		return nil, translateNotFound(err, "User", id)
	}
	s.invalidate(ctx, id)
	return updated, nil
}

func (s *UsersService) Delete(ctx context.Context, id string) (*entity.User, error) {
	deleted, err := s.Users.Delete(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "User", id)
	}
	s.invalidate(ctx, id)
	return deleted, nil
}

// ChangePassword verifies the current password before writing a new hash.
func (s *UsersService) ChangePassword(ctx context.Context, id, current, next string) error {
	u, err := s.Users.FindByID(ctx, id)
	if err != nil {
		return translateNotFound(err, "User", id)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return err
	}
	if _, err := s.Users.UpdatePassword(ctx, id, hash); err != nil {
		return translateNotFound(err, "User", id)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *UsersService) invalidate(ctx context.Context, id string) {
	keys := []string{cache.EntityKey(userCachePrefix, id), userListKey}
	if err := s.Cache.Delete(ctx, keys...); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("keys", keys).Warn("cache invalidation failed")
	}
}
