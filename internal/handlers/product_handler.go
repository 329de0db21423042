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

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	productService *services.ProductService
	storeService   *services.StoreService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService *services.ProductService, storeService *services.StoreService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		storeService:   storeService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the public product browsing routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// RegisterSellerRoutes registers the seller's catalog management routes.
func (h *ProductHandler) RegisterSellerRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetMyProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products, optionally filtered by store.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	if storeID := c.Query("storeId"); storeID != "" {
		products, err := h.productService.GetStoreProducts(storeID)
		if err != nil {
			log.Printf("Error getting products of store %s: %v", storeID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not retrieve products",
				"error":   err.Error(),
			})
		}
		return c.JSON(products)
	}

	products, err := h.productService.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.productService.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}
	return c.JSON(product)
}

// HandleGetMyProducts retrieves the seller's own catalog.
func (h *ProductHandler) HandleGetMyProducts(c *fiber.Ctx) error {
	store, err := h.storeService.GetSellerStore(middleware.UserID(c))
	if err != nil {
		log.Printf("Error resolving seller store: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Store not found for this seller",
		})
	}
	products, err := h.productService.GetStoreProducts(store.ID)
	if err != nil {
		log.Printf("Error getting products of store %s: %v", store.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleCreateProduct lists a new product in the seller's catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	store, err := h.storeService.GetSellerStore(middleware.UserID(c))
	if err != nil {
		log.Printf("Error resolving seller store: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Store not found for this seller",
		})
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.StoreID = store.ID
	if err := h.validate.Struct(product); err != nil {
		return validationError(c, err)
	}

	if err := h.productService.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates one of the seller's own products.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	store, err := h.storeService.GetSellerStore(middleware.UserID(c))
	if err != nil {
		log.Printf("Error resolving seller store: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Store not found for this seller",
		})
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")
	product.StoreID = store.ID
	if err := h.validate.Struct(product); err != nil {
		return validationError(c, err)
	}

	if err := h.productService.UpdateProduct(store.ID, &product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "does not belong") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes one of the seller's own products.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	store, err := h.storeService.GetSellerStore(middleware.UserID(c))
	if err != nil {
		log.Printf("Error resolving seller store: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Store not found for this seller",
		})
	}

	productID := c.Params("id")
	if err := h.productService.DeleteProduct(store.ID, productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		if strings.Contains(err.Error(), "not found") || strings.Contains(err.Error(), "does not belong") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
