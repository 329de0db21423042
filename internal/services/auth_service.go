package services

import (
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"grocto/internal/models"
	"grocto/internal/repositories"
)

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	storeRepo  repositories.StoreRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, storeRepo repositories.StoreRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterStudentInput carries the student-specific registration fields.
type RegisterStudentInput struct {
	CollegeID  string `json:"collegeId" validate:"required,max=50"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Department string `json:"department" validate:"omitempty,max=100"`
}

// RegisterSellerInput carries the seller-specific registration fields.
type RegisterSellerInput struct {
	StoreName    string `json:"storeName" validate:"required,min=2,max=100"`
	StoreAddress string `json:"storeAddress" validate:"required,max=200"`
	PhoneNumber  string `json:"phoneNumber" validate:"required,max=20"`
}

// RegisterUser registers a new user, hashes their password, and creates the
// role-specific profile: a student record or the seller's store.
func (s *AuthService) RegisterUser(user *models.User, student *RegisterStudentInput, seller *RegisterSellerInput) error {
	if existingUser, err := s.userRepo.GetByEmail(user.Email); err == nil && existingUser != nil {
		return fmt.Errorf("email '%s' already registered", user.Email)
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	switch user.Role {
	case models.RoleStudent:
		if student == nil {
			return fmt.Errorf("student registration requires a college ID")
		}
		profile := &models.Student{
			UserID:     user.ID,
			CollegeID:  student.CollegeID,
			Phone:      student.Phone,
			Department: student.Department,
		}
		if err := s.userRepo.CreateStudent(profile); err != nil {
			return fmt.Errorf("failed to create student profile: %w", err)
		}
	case models.RoleSeller:
		if seller == nil {
			return fmt.Errorf("seller registration requires store details")
		}
		store := &models.Store{
			SellerID: user.ID,
			Name:     seller.StoreName,
			Address:  seller.StoreAddress,
			Phone:    seller.PhoneNumber,
		}
		if err := s.storeRepo.Create(store); err != nil {
			return fmt.Errorf("failed to create store for seller: %w", err)
		}
	default:
		return fmt.Errorf("unknown role: %s", user.Role)
	}
	return nil
}

// LoginUser authenticates a user by email and returns a JWT token if successful.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// It's good practice not to reveal if the email exists or not for security
		return "", nil, fmt.Errorf("invalid credentials")
	}

	// Compare the provided password with the hashed password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	// Generate JWT token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenDurat).Unix(), // Token expiration time
		"iat":     time.Now().Unix(),                   // Issued at time
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	user.Password = ""
	return tokenString, user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// StudentProfile returns the student record attached to a user account.
func (s *AuthService) StudentProfile(userID string) (*models.Student, error) {
	return s.userRepo.GetStudentByUserID(userID)
}
