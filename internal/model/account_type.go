package model

import "time"

// AccountType описывает группу записей пользователя (например, "Bank").
// Имя уникально в пределах владельца без учёта регистра.
type AccountType struct {
	ID     string `gorm:"primaryKey"`
	UserID string `gorm:"not null;uniqueIndex:ux_account_types_user_name,priority:1"` // ссылка на users.id

	// Связи
	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Name     string `gorm:"not null"`
	NameFold string `gorm:"not null;uniqueIndex:ux_account_types_user_name,priority:2"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
