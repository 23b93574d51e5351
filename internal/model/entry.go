package model

import "time"

// Entry хранит пару ключ/значение внутри типа аккаунта. Значение хранится как есть,
// может быть многострочным.
type Entry struct {
	ID            string `gorm:"primaryKey"`
	AccountTypeID string `gorm:"not null;uniqueIndex:ux_entries_type_key,priority:1"` // ссылка на account_types.id

	// Связи
	AccountType *AccountType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Key     string `gorm:"not null"`
	KeyFold string `gorm:"not null;uniqueIndex:ux_entries_type_key,priority:2"`
	Value   string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
