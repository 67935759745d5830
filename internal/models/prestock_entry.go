package models

import "time"

// PrestockEntry: pre-event order/receipt, one row per event and product.
type PrestockEntry struct {
	EventID          uint       `gorm:"column:eid;primaryKey;autoIncrement:false" json:"eid"`
	ProductID        uint       `gorm:"column:pid;primaryKey;autoIncrement:false" json:"pid"`
	OrderQuantity    *int64     `gorm:"column:order_quantity" json:"order_quantity"`
	OrderSubquantity *float64   `gorm:"column:order_subquantity" json:"order_subquantity"`
	RealQuantity     *int64     `gorm:"column:real_quantity" json:"real_quantity"`
	RealSubquantity  *float64   `gorm:"column:real_subquantity" json:"real_subquantity"`
	Date             *time.Time `gorm:"column:psdate;type:date" json:"psdate"`
	Description      *string    `gorm:"column:description;size:255" json:"desc"`

	Event   *Event   `gorm:"foreignKey:EventID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID;references:ID" json:"-"`
}

func (PrestockEntry) TableName() string { return "prestock" }
