package models

type Product struct {
	ID          uint     `gorm:"column:pid;primaryKey" json:"pid"`
	Name        string   `gorm:"column:pname;size:100;not null" json:"pname"`
	Volume      *float64 `gorm:"column:vol" json:"vol"`
	VolumeUnit  *string  `gorm:"column:volunit;size:20" json:"volunit"`
	Category    string   `gorm:"column:category;size:50;not null" json:"category"`
	Unit        string   `gorm:"column:unit;size:20;not null" json:"unit"`
	Subunit     string   `gorm:"column:subunit;size:20;not null" json:"subunit"`
	Factor      float64  `gorm:"column:factor;not null" json:"factor"` // subunits per unit
	Description *string  `gorm:"column:description;size:255" json:"desc"`
}

func (Product) TableName() string { return "product" }
