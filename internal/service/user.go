package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopmono/storefront/internal/directory"
	"github.com/shopmono/storefront/internal/errs"
	"github.com/shopmono/storefront/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService manages accounts in the relational store and mirrors them
// into the in-process directory the admin dashboard reads.
type UserService struct {
	db  *gorm.DB
	dir directory.Directory
}

func NewUserService(db *gorm.DB, dir directory.Directory) *UserService {
	return &UserService{db: db, dir: dir}
}

func (s *UserService) Register(ctx context.Context, email, name, password string) (*model.User, error) {
	if email == "" || name == "" || password == "" {
		return nil, errs.Validationf("email, name and password are required")
	}
	if !emailRegex.MatchString(email) {
		return nil, errs.Validationf("email is not valid")
	}
	if len(password) < 8 {
		return nil, errs.Validationf("password must be at least 8 characters")
	}
	var existing model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, errs.ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	if s.dir != nil {
		s.dir.Add(directory.Entry{Email: u.Email, Name: u.Name, Role: u.Role, JoinedAt: time.Now().UTC()})
	}
	return u, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, errs.Validationf("email and password are required")
	}
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errs.ErrInvalidCredentials
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
