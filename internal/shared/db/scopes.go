// Package db provides gorm helpers shared by the repositories.
package db

import (
	"gorm.io/gorm"
)

// NewestFirst orders rows by creation time, newest first, using the primary
// key as a tiebreak so pages stay stable under identical timestamps.
func NewestFirst(createdColumn, idColumn string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(createdColumn + " DESC").Order(idColumn + " DESC")
	}
}

// Paginate applies an offset window. A non-positive limit leaves the query unbounded.
func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		if offset < 0 {
			offset = 0
		}
		return db.Offset(offset).Limit(limit)
	}
}
