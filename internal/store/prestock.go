package store

import (
	"context"
	"time"

	"github.com/PanuLaosuwan/faststock-backend/internal/ledger"
	"github.com/PanuLaosuwan/faststock-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PrestockView struct {
	EventID          uint       `gorm:"column:eid"`
	ProductID        uint       `gorm:"column:pid"`
	ProductName      string     `gorm:"column:pname"`
	OrderQuantity    *int64     `gorm:"column:order_quantity"`
	OrderSubquantity *float64   `gorm:"column:order_subquantity"`
	RealQuantity     *int64     `gorm:"column:real_quantity"`
	RealSubquantity  *float64   `gorm:"column:real_subquantity"`
	Date             *time.Time `gorm:"column:psdate"`
	Description      *string    `gorm:"column:description"`
}

func (v PrestockView) LedgerRow() ledger.PrestockRow {
	return ledger.PrestockRow{
		ProductID:        v.ProductID,
		ProductName:      v.ProductName,
		OrderQuantity:    v.OrderQuantity,
		OrderSubquantity: v.OrderSubquantity,
		RealQuantity:     v.RealQuantity,
		RealSubquantity:  v.RealSubquantity,
		Date:             v.Date,
	}
}

func (s *Store) prestockQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("prestock AS ps").
		Select("ps.eid, ps.pid, p.pname, ps.order_quantity, ps.order_subquantity, ps.real_quantity, ps.real_subquantity, ps.psdate, ps.description").
		Joins("JOIN product p ON p.pid = ps.pid").
		Order("ps.eid ASC, ps.pid ASC")
}

func (s *Store) ListPrestock(ctx context.Context) ([]PrestockView, error) {
	var rows []PrestockView
	err := s.prestockQuery(ctx).Scan(&rows).Error
	return rows, translate(err, "prestock")
}

func (s *Store) PrestockByEvent(ctx context.Context, eventID uint) ([]PrestockView, error) {
	var rows []PrestockView
	err := s.prestockQuery(ctx).Where("ps.eid = ?", eventID).Scan(&rows).Error
	return rows, translate(err, "prestock")
}

func (s *Store) CreatePrestock(ctx context.Context, e *models.PrestockEntry) error {
	if e.Date != nil {
		d := ledger.Day(*e.Date)
		e.Date = &d
	}
	return translateWrite(s.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error, "prestock entry", "event or product")
}

func (s *Store) PatchPrestock(ctx context.Context, eventID, productID uint, fields map[string]any) (*models.PrestockEntry, error) {
	res := s.db.WithContext(ctx).Model(&models.PrestockEntry{}).
		Where("eid = ? AND pid = ?", eventID, productID).
		Updates(fields)
	if err := affected(res, "prestock entry"); err != nil {
		return nil, err
	}
	var e models.PrestockEntry
	if err := s.db.WithContext(ctx).Where("eid = ? AND pid = ?", eventID, productID).First(&e).Error; err != nil {
		return nil, translate(err, "prestock entry")
	}
	return &e, nil
}

func (s *Store) DeletePrestock(ctx context.Context, eventID, productID uint) error {
	res := s.db.WithContext(ctx).Where("eid = ? AND pid = ?", eventID, productID).Delete(&models.PrestockEntry{})
	return affected(res, "prestock entry")
}
