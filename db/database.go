package db

import "gorm.io/gorm"

// Database is the handle repositories receive instead of reaching for a
// package-level connection.
type Database interface {
	GetDB() *gorm.DB
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }
