package models

import "time"

type User struct {
	ID           uint    `gorm:"column:uid;primaryKey"`
	Username     string  `gorm:"column:username;size:100;uniqueIndex;not null"`
	PasswordHash string  `gorm:"column:password;size:255;not null"`
	Name         string  `gorm:"column:uname;size:100;not null"`
	Position     *string `gorm:"column:pos;size:50"`
	Description  *string `gorm:"column:description;size:255"`
	CreatedAt    time.Time
}

func (User) TableName() string { return "users" }
