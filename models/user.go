package models

import "time"

const (
	RoleCustomer     = "customer"
	RoleManager      = "manager"
	RoleDeliveryCrew = "delivery_crew"
	RoleAdmin        = "admin"
)

// User carries a single role column. A user is exactly one of
// customer / manager / delivery_crew / admin, so promoting into one
// group implicitly removes membership in the other.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);unique;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      string    `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
