package models

import "gorm.io/gorm"

// Role distinguishes the two account types of the marketplace.
type Role string

const (
	RoleStudent Role = "student"
	RoleSeller  Role = "seller"
)

// User represents an account of the marketplace, either a student buyer
// or a seller running a store.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Role       Role   `json:"role" gorm:"type:varchar(20)" validate:"required,oneof=student seller"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Student holds the student-specific profile attached to a User.
type Student struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string `json:"userId" gorm:"uniqueIndex;type:varchar(36)" validate:"required,uuid"`
	CollegeID  string `json:"collegeId" validate:"required,max=50"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Department string `json:"department" validate:"omitempty,max=100"`
	gorm.Model
}
