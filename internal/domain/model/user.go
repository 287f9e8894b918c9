package model

import "time"

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// ValidRole はフォーム入力のrole判定（不正値はbuyerに落とす）
func ValidRole(s string) bool {
	return Role(s) == RoleBuyer || Role(s) == RoleSeller
}

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	Role         Role   `gorm:"column:user_type;type:varchar(10);not null;check:user_type IN ('buyer','seller')" json:"user_type"`
	IsAdmin      bool   `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
