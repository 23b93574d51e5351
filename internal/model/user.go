package model

import "time"

// User владеет набором типов аккаунтов. Имя уникально среди всех пользователей
// без учёта регистра.
type User struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	NameFold string `gorm:"not null;uniqueIndex:ux_users_name_fold"` // ключ сравнения и сортировки

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
