package store

import (
	"context"

	"github.com/PanuLaosuwan/faststock-backend/internal/models"
)

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).Order("pid").Find(&products).Error
	return products, translate(err, "product")
}

func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, "pid = ?", id).Error; err != nil {
		return nil, translate(err, "product")
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return translate(s.db.WithContext(ctx).Create(p).Error, "product")
}

func (s *Store) UpdateProduct(ctx context.Context, id uint, fields map[string]any) (*models.Product, error) {
	res := s.db.WithContext(ctx).Model(&models.Product{}).Where("pid = ?", id).Updates(fields)
	if err := affected(res, "product"); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	return affected(s.db.WithContext(ctx).Delete(&models.Product{}, "pid = ?", id), "product")
}
