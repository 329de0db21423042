package handlers

import (
	"errors"
	"log"
	"strings"

	"grocto/internal/engine"
	"grocto/internal/middleware"
	"grocto/internal/models"
	"grocto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for placing orders and driving the
// order lifecycle.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterStudentRoutes registers the student-facing order routes.
func (h *OrderHandler) RegisterStudentRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandlePlaceOrder)
	orderRoutes.Get("/", h.HandleGetMyOrders)
	orderRoutes.Get("/:id", h.HandleGetMyOrderByID)
}

// RegisterSellerRoutes registers the seller-facing order routes.
func (h *OrderHandler) RegisterSellerRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetStoreOrders)
	orderRoutes.Get("/:id", h.HandleGetStoreOrderByID)
	orderRoutes.Patch("/:id/status", h.HandleUpdateOrderStatus)
}

// HandlePlaceOrder checks out the student's cart into a new order.
func (h *OrderHandler) HandlePlaceOrder(c *fiber.Ctx) error {
	var req services.PlaceOrderInput
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	order, err := h.service.PlaceOrder(middleware.UserID(c), req)
	if err != nil {
		log.Printf("Error placing order: %v", err)
		switch {
		case errors.Is(err, engine.ErrInvalidWindow):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Delivery window is invalid: it must be at least 60 minutes long",
				"error":   err.Error(),
			})
		case errors.Is(err, engine.ErrNoMatchingSlot):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "No delivery slot of the store contains the requested window",
				"error":   err.Error(),
			})
		case errors.Is(err, engine.ErrOfferExpired):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "The applied offer expired before checkout, refresh your cart",
				"error":   err.Error(),
			})
		case errors.Is(err, engine.ErrOfferLimitReached):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "The applied offer's usage limit was reached, refresh your cart",
				"error":   err.Error(),
			})
		case errors.Is(err, engine.ErrInvalidOfferScope):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "The applied offer does not cover the items in your cart",
				"error":   err.Error(),
			})
		case strings.Contains(err.Error(), "cart is empty"):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Cannot place an order with an empty cart",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not place order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetMyOrders returns the authenticated student's order history.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetStudentOrders(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting student orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetMyOrderByID returns one of the student's own orders.
func (h *OrderHandler) HandleGetMyOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetStudentOrder(middleware.UserID(c), orderID)
	if err != nil {
		log.Printf("Error getting order %s: %v", orderID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}
	return c.JSON(order)
}

// HandleGetStoreOrders returns all orders placed with the seller's store.
func (h *OrderHandler) HandleGetStoreOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetStoreOrders(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting store orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetStoreOrderByID returns one order of the seller's store.
func (h *OrderHandler) HandleGetStoreOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetStoreOrder(middleware.UserID(c), orderID)
	if err != nil {
		log.Printf("Error getting store order %s: %v", orderID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Order not found",
		})
	}
	return c.JSON(order)
}

// UpdateStatusRequest represents the body of a status transition request.
// Rejection is irreversible, so it must carry confirm=true; a stray
// status string alone cannot kill an order.
type UpdateStatusRequest struct {
	Status           models.Status `json:"status" validate:"required,oneof=accepted rejected packaging delivering delivered"`
	DeliveryPersonID string        `json:"deliveryPersonId" validate:"omitempty"`
	Confirm          bool          `json:"confirm"`
}

// HandleUpdateOrderStatus advances an order through its lifecycle. A
// request that lost a concurrent race reports the status that won with a
// 409 so the storefront can refresh.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing status update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	if req.Status == models.StatusRejected && !req.Confirm {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Rejecting an order is irreversible; resend the request with confirm set to true",
		})
	}

	order, err := h.service.UpdateStatus(middleware.UserID(c), orderID, req.Status, req.DeliveryPersonID)
	if err != nil {
		log.Printf("Error updating order %s status: %v", orderID, err)
		switch {
		case errors.Is(err, engine.ErrIllegalTransition):
			resp := fiber.Map{
				"message": "Order status change is not allowed",
				"error":   err.Error(),
			}
			if order != nil {
				resp["currentStatus"] = order.Status
			}
			return c.Status(fiber.StatusConflict).JSON(resp)
		case errors.Is(err, engine.ErrNoDeliveryPersonAvailable):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "No delivery person is available for this order",
				"error":   err.Error(),
			})
		case strings.Contains(err.Error(), "does not belong"):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		case strings.Contains(err.Error(), "not found"):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(order)
}
