package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"grocto/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users    map[string]models.User
	students map[string]models.Student
	mu       sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:    make(map[string]models.User),
		students: make(map[string]models.Student),
	}
}

// Create adds a new user account.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return fmt.Errorf("email '%s' already registered", user.Email)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByEmail returns a user by email address.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

// GetByID returns a user by its ID.
func (r *MockUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s not found", id)
	}
	return &user, nil
}

// CreateStudent attaches a student profile to a user account.
func (r *MockUserRepository) CreateStudent(student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if student.ID == "" {
		student.ID = uuid.New().String()
	}
	r.students[student.ID] = *student
	return nil
}

// GetStudentByUserID returns the student profile of a user account.
func (r *MockUserRepository) GetStudentByUserID(userID string) (*models.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, student := range r.students {
		if student.UserID == userID {
			return &student, nil
		}
	}
	return nil, fmt.Errorf("student profile for user %s not found", userID)
}
