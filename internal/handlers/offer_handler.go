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

// OfferHandler handles HTTP requests for promotional offers.
type OfferHandler struct {
	offerService *services.OfferService
	storeService *services.StoreService
	validate     *validator.Validate
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(offerService *services.OfferService, storeService *services.StoreService) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		storeService: storeService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the public offer browsing routes.
func (h *OfferHandler) RegisterRoutes(router fiber.Router) {
	offerRoutes := router.Group("/offers")
	offerRoutes.Get("/", h.HandleGetActiveOffers)
	offerRoutes.Get("/store/:storeId", h.HandleGetActiveStoreOffers)
}

// RegisterSellerRoutes registers the seller's offer management routes.
func (h *OfferHandler) RegisterSellerRoutes(router fiber.Router) {
	offerRoutes := router.Group("/offers")
	offerRoutes.Get("/", h.HandleGetMyOffers)
	offerRoutes.Post("/", h.HandleCreateOffer)
	offerRoutes.Put("/:id", h.HandleUpdateOffer)
	offerRoutes.Delete("/:id", h.HandleDeleteOffer)
}

// HandleGetActiveOffers lists all currently active offers across stores.
func (h *OfferHandler) HandleGetActiveOffers(c *fiber.Ctx) error {
	offers, err := h.offerService.GetActiveOffers()
	if err != nil {
		log.Printf("Error getting active offers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve offers",
			"error":   err.Error(),
		})
	}
	return c.JSON(offers)
}

// HandleGetActiveStoreOffers lists the active offers of one store.
func (h *OfferHandler) HandleGetActiveStoreOffers(c *fiber.Ctx) error {
	storeID := c.Params("storeId")
	offers, err := h.offerService.GetActiveStoreOffers(storeID)
	if err != nil {
		log.Printf("Error getting active offers of store %s: %v", storeID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve offers",
			"error":   err.Error(),
		})
	}
	return c.JSON(offers)
}

// HandleGetMyOffers lists every offer of the seller's store, expired and
// exhausted ones included.
func (h *OfferHandler) HandleGetMyOffers(c *fiber.Ctx) error {
	store, err := h.storeService.GetSellerStore(middleware.UserID(c))
	if err != nil {
		log.Printf("Error resolving seller store: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Store not found for this seller",
		})
	}
	offers, err := h.offerService.GetStoreOffers(store.ID)
	if err != nil {
		log.Printf("Error getting offers of store %s: %v", store.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve offers",
			"error":   err.Error(),
		})
	}
	return c.JSON(offers)
}

// HandleCreateOffer creates a new offer under the seller's store.
func (h *OfferHandler) HandleCreateOffer(c *fiber.Ctx) error {
	var offer models.Offer
	if err := c.BodyParser(&offer); err != nil {
		log.Printf("Error parsing offer body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// StoreID is assigned by the service from the seller's account.
	if err := h.validate.StructExcept(offer, "ID", "StoreID"); err != nil {
		return validationError(c, err)
	}

	if err := h.offerService.CreateOffer(middleware.UserID(c), &offer); err != nil {
		log.Printf("Error creating offer: %v", err)
		if isOfferFieldError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid offer",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create offer",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(offer)
}

// HandleUpdateOffer updates one of the seller's offers.
func (h *OfferHandler) HandleUpdateOffer(c *fiber.Ctx) error {
	var offer models.Offer
	if err := c.BodyParser(&offer); err != nil {
		log.Printf("Error parsing offer body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	offer.ID = c.Params("id")
	if err := h.validate.StructExcept(offer, "ID", "StoreID"); err != nil {
		return validationError(c, err)
	}

	if err := h.offerService.UpdateOffer(middleware.UserID(c), &offer); err != nil {
		log.Printf("Error updating offer %s: %v", offer.ID, err)
		switch {
		case isOfferFieldError(err):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid offer",
				"error":   err.Error(),
			})
		case strings.Contains(err.Error(), "not found"), strings.Contains(err.Error(), "does not belong"):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Offer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update offer",
			"error":   err.Error(),
		})
	}
	return c.JSON(offer)
}

// HandleDeleteOffer removes one of the seller's offers.
func (h *OfferHandler) HandleDeleteOffer(c *fiber.Ctx) error {
	offerID := c.Params("id")
	if err := h.offerService.DeleteOffer(middleware.UserID(c), offerID); err != nil {
		log.Printf("Error deleting offer %s: %v", offerID, err)
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "does not belong") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Offer not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete offer",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Offer deleted successfully",
	})
}

func isOfferFieldError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "discount") || strings.Contains(msg, "closing date") ||
		strings.Contains(msg, "percentage") || strings.Contains(msg, "amount")
}
