package services

import (
	"fmt"

	"grocto/internal/models"
	"grocto/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products across stores.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// GetStoreProducts retrieves the products listed by a store.
func (s *ProductService) GetStoreProducts(storeID string) ([]models.Product, error) {
	return s.repo.GetByStore(storeID)
}

// CreateProduct creates a new product under the given store.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product. Only the owning store may
// update it.
func (s *ProductService) UpdateProduct(storeID string, product *models.Product) error {
	existing, err := s.repo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing.StoreID != storeID {
		return fmt.Errorf("product %s does not belong to store %s", product.ID, storeID)
	}
	product.StoreID = existing.StoreID
	return s.repo.Update(product)
}

// DeleteProduct deletes a product owned by the given store.
func (s *ProductService) DeleteProduct(storeID, id string) error {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing.StoreID != storeID {
		return fmt.Errorf("product %s does not belong to store %s", id, storeID)
	}
	return s.repo.Delete(id)
}
