package handlers

import (
	"fmt"
	"log"
	"strings"

	"grocto/internal/middleware"
	"grocto/internal/models"
	"grocto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// RegisterStudentRoutes registers the authenticated student profile route.
func (h *AuthHandler) RegisterStudentRoutes(router fiber.Router) {
	router.Get("/profile", h.HandleStudentProfile)
}

// RegisterRequest represents the request body for registration. The role
// decides which of the nested profile blocks is required.
type RegisterRequest struct {
	Name     string                         `json:"name" validate:"required,min=2,max=100"`
	Email    string                         `json:"email" validate:"required,email"`
	Password string                         `json:"password" validate:"required,min=8"`
	Role     models.Role                    `json:"role" validate:"required,oneof=student seller"`
	Student  *services.RegisterStudentInput `json:"student,omitempty"`
	Seller   *services.RegisterSellerInput  `json:"seller,omitempty"`
}

// HandleRegister handles new student and seller registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	if req.Role == models.RoleStudent && req.Student == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Student registration requires the student profile block",
		})
	}
	if req.Role == models.RoleSeller && req.Seller == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Seller registration requires the seller profile block",
		})
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
	if err := h.authService.RegisterUser(&user, req.Student, req.Seller); err != nil {
		log.Printf("Error registering user: %v", err)
		if strings.Contains(err.Error(), "already registered") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
			"error":   err.Error(),
		})
	}

	// For security, do not return the password hash
	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	token, user, err := h.authService.LoginUser(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// HandleStudentProfile returns the authenticated student's profile record.
func (h *AuthHandler) HandleStudentProfile(c *fiber.Ctx) error {
	profile, err := h.authService.StudentProfile(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting student profile: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Student profile not found",
		})
	}
	return c.JSON(profile)
}

// validationError renders go-playground validation failures as a field map.
func validationError(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
