package models

import "time"

// StockEntry: opening and closing record per bar, product and day.
// EndQuantity is the amount used (sold) that day, not what is left.
type StockEntry struct {
	BarCode          string    `gorm:"column:bcode;primaryKey;size:50" json:"bcode"`
	Date             time.Time `gorm:"column:sdate;primaryKey;type:date" json:"sdate"`
	ProductID        uint      `gorm:"column:pid;primaryKey;autoIncrement:false" json:"pid"`
	StartQuantity    int64     `gorm:"column:start_quantity;not null" json:"start_quantity"`
	StartSubquantity *float64  `gorm:"column:start_subquantity" json:"start_subquantity"`
	EndQuantity      int64     `gorm:"column:end_quantity;not null" json:"end_quantity"`
	EndSubquantity   *float64  `gorm:"column:end_subquantity" json:"end_subquantity"`
	Description      *string   `gorm:"column:description;size:255" json:"desc"`

	Bar     *Bar     `gorm:"foreignKey:BarCode;references:Code;constraint:OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID;references:ID" json:"-"`
}

func (StockEntry) TableName() string { return "stock" }
