package store

import (
	"context"
	"strings"

	"github.com/PanuLaosuwan/faststock-backend/internal/models"
)

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("uid").Find(&users).Error
	return users, translate(err, "user")
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, "uid = ?", id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&u).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error, "user")
}

func (s *Store) UpdateUser(ctx context.Context, id uint, fields map[string]any) (*models.User, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("uid = ?", id).Updates(fields)
	if err := affected(res, "user"); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.User{}, "uid = ?", id), "user")
}
