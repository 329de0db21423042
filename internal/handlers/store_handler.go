package handlers

import (
	"log"
	"strings"

	"grocto/internal/middleware"
	"grocto/internal/models"
	"grocto/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for store profiles, delivery slots,
// and the delivery roster.
type StoreHandler struct {
	storeService *services.StoreService
	validate     *validator.Validate
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(storeService *services.StoreService) *StoreHandler {
	return &StoreHandler{
		storeService: storeService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the public store browsing routes.
func (h *StoreHandler) RegisterRoutes(router fiber.Router) {
	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", h.HandleGetStores)
	storeRoutes.Get("/:id", h.HandleGetStoreByID)
}

// RegisterSellerRoutes registers the seller's store management routes.
func (h *StoreHandler) RegisterSellerRoutes(router fiber.Router) {
	storeRoutes := router.Group("/store")
	storeRoutes.Get("/", h.HandleGetMyStore)
	storeRoutes.Put("/", h.HandleUpdateProfile)

	storeRoutes.Post("/slots", h.HandleCreateSlot)
	storeRoutes.Put("/slots/:id", h.HandleUpdateSlot)
	storeRoutes.Delete("/slots/:id", h.HandleDeleteSlot)

	storeRoutes.Post("/delivery-persons", h.HandleAddDeliveryPerson)
	storeRoutes.Delete("/delivery-persons/:id", h.HandleRemoveDeliveryPerson)
}

// HandleGetStores lists all stores for the student storefront.
func (h *StoreHandler) HandleGetStores(c *fiber.Ctx) error {
	stores, err := h.storeService.GetAllStores()
	if err != nil {
		log.Printf("Error getting stores: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stores",
			"error":   err.Error(),
		})
	}
	return c.JSON(stores)
}

// HandleGetStoreByID returns one store with its delivery slots.
func (h *StoreHandler) HandleGetStoreByID(c *fiber.Ctx) error {
	storeID := c.Params("id")
	store, err := h.storeService.GetStoreByID(storeID)
	if err != nil {
		log.Printf("Error getting store %s: %v", storeID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Store not found",
		})
	}
	return c.JSON(store)
}

// HandleGetMyStore returns the seller's own store.
func (h *StoreHandler) HandleGetMyStore(c *fiber.Ctx) error {
	store, err := h.storeService.GetSellerStore(middleware.UserID(c))
	if err != nil {
		log.Printf("Error resolving seller store: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Store not found for this seller",
		})
	}
	return c.JSON(store)
}

// HandleUpdateProfile updates the seller's store profile.
func (h *StoreHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req services.UpdateProfileInput
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing store profile body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	store, err := h.storeService.UpdateProfile(middleware.UserID(c), req)
	if err != nil {
		log.Printf("Error updating store profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update store profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(store)
}

// HandleCreateSlot defines a new delivery slot for the seller's store.
func (h *StoreHandler) HandleCreateSlot(c *fiber.Ctx) error {
	var slot models.DeliverySlot
	if err := c.BodyParser(&slot); err != nil {
		log.Printf("Error parsing slot body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.storeService.CreateSlot(middleware.UserID(c), &slot); err != nil {
		log.Printf("Error creating slot: %v", err)
		if strings.Contains(err.Error(), "invalid slot") || strings.Contains(err.Error(), "must be before") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid slot window",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create delivery slot",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(slot)
}

// HandleUpdateSlot updates one of the seller's delivery slots.
func (h *StoreHandler) HandleUpdateSlot(c *fiber.Ctx) error {
	var slot models.DeliverySlot
	if err := c.BodyParser(&slot); err != nil {
		log.Printf("Error parsing slot body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	slot.ID = c.Params("id")

	if err := h.storeService.UpdateSlot(middleware.UserID(c), &slot); err != nil {
		log.Printf("Error updating slot %s: %v", slot.ID, err)
		switch {
		case strings.Contains(err.Error(), "invalid slot"), strings.Contains(err.Error(), "must be before"):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid slot window",
				"error":   err.Error(),
			})
		case strings.Contains(err.Error(), "not found"):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Delivery slot not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update delivery slot",
			"error":   err.Error(),
		})
	}
	return c.JSON(slot)
}

// HandleDeleteSlot removes one of the seller's delivery slots.
func (h *StoreHandler) HandleDeleteSlot(c *fiber.Ctx) error {
	slotID := c.Params("id")
	if err := h.storeService.DeleteSlot(middleware.UserID(c), slotID); err != nil {
		log.Printf("Error deleting slot %s: %v", slotID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Delivery slot not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete delivery slot",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Delivery slot deleted successfully",
	})
}

// HandleAddDeliveryPerson adds a roster entry to the seller's store.
func (h *StoreHandler) HandleAddDeliveryPerson(c *fiber.Ctx) error {
	var person models.DeliveryPerson
	if err := c.BodyParser(&person); err != nil {
		log.Printf("Error parsing delivery person body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.storeService.AddDeliveryPerson(middleware.UserID(c), &person); err != nil {
		log.Printf("Error adding delivery person: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add delivery person",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(person)
}

// HandleRemoveDeliveryPerson removes a roster entry. Orders already out
// for delivery keep their contact snapshot.
func (h *StoreHandler) HandleRemoveDeliveryPerson(c *fiber.Ctx) error {
	personID := c.Params("id")
	if err := h.storeService.RemoveDeliveryPerson(middleware.UserID(c), personID); err != nil {
		log.Printf("Error removing delivery person %s: %v", personID, err)
		if strings.Contains(err.Error(), "not on the roster") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Delivery person not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove delivery person",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Delivery person removed successfully",
	})
}
