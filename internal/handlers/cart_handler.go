package handlers

import (
	"errors"
	"log"
	"strings"

	"grocto/internal/middleware"
	"grocto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the student's cart.
type CartHandler struct {
	cartService *services.CartService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validate:    validator.New(),
	}
}

// RegisterStudentRoutes registers the cart routes.
func (h *CartHandler) RegisterStudentRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleViewCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClear)
}

// HandleViewCart returns the annotated cart with its monetary summary.
func (h *CartHandler) HandleViewCart(c *fiber.Ctx) error {
	view, err := h.cartService.ViewCart(middleware.UserID(c))
	if err != nil {
		log.Printf("Error viewing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(view)
}

// AddItemRequest represents the body of an add-to-cart request. Setting
// clearExisting acknowledges that a cart bound to another store will be
// dropped and rebound.
type AddItemRequest struct {
	ProductID     string `json:"productId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gte=1"`
	ClearExisting bool   `json:"clearExisting"`
}

// HandleAddItem adds a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-to-cart body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	err := h.cartService.AddItem(middleware.UserID(c), req.ProductID, req.Quantity, req.ClearExisting)
	if err != nil {
		log.Printf("Error adding product %s to cart: %v", req.ProductID, err)
		switch {
		case errors.Is(err, services.ErrCartStoreConflict):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Your cart contains items from another store. Set clearExisting to replace it.",
				"error":   err.Error(),
			})
		case strings.Contains(err.Error(), "not found"):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Item added to cart",
	})
}

// UpdateQuantityRequest represents the body of a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// HandleUpdateQuantity sets a cart line's quantity; zero removes it.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	itemID := c.Params("id")
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	if err := h.cartService.UpdateQuantity(middleware.UserID(c), itemID, req.Quantity); err != nil {
		log.Printf("Error updating cart item %s: %v", itemID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart updated",
	})
}

// HandleRemoveItem removes one line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.cartService.RemoveItem(middleware.UserID(c), itemID); err != nil {
		log.Printf("Error removing cart item %s: %v", itemID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart item",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Item removed from cart",
	})
}

// HandleClear empties the cart.
func (h *CartHandler) HandleClear(c *fiber.Ctx) error {
	if err := h.cartService.Clear(middleware.UserID(c)); err != nil {
		log.Printf("Error clearing cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not clear cart",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared",
	})
}
