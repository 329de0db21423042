package repositories

import "grocto/internal/models"

// UserRepository defines the interface for user and student-profile data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	CreateStudent(student *models.Student) error
	GetStudentByUserID(userID string) (*models.Student, error)
}
