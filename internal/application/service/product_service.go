package service

import (
	"context"
	"strings"

	"github.com/sangkips/shopflow/internal/domain/entity"
	"github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/pkg/apperror"
)

// BillingSearchLimit caps the results of the billing product search
const BillingSearchLimit = 10

// ProductService handles catalog reads and scan resolution
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// ListProducts returns the catalog, filtered by the inventory search when
// query is not empty
func (s *ProductService) ListProducts(ctx context.Context, query string) ([]entity.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return products, nil
	}

	filtered := make([]entity.Product, 0, len(products))
	for i := range products {
		if products[i].MatchesCatalog(query) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// SearchForBilling returns up to BillingSearchLimit products whose name,
// id, barcode, brand or serials match query. An empty query matches nothing.
func (s *ProductService) SearchForBilling(ctx context.Context, query string) ([]entity.Product, error) {
	if query == "" {
		return []entity.Product{}, nil
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return searchForBilling(products, query), nil
}

func searchForBilling(products []entity.Product, query string) []entity.Product {
	matches := make([]entity.Product, 0, BillingSearchLimit)
	for i := range products {
		if products[i].MatchesText(query) {
			matches = append(matches, products[i])
			if len(matches) == BillingSearchLimit {
				break
			}
		}
	}
	return matches
}

// ScanResult is the product a scanned code resolved to, with the serial
// to bind when the code was an IMEI
type ScanResult struct {
	Product *entity.Product
	IMEI    string
}

// ResolveScan maps a scanned or typed code to a product. An exact serial
// wins, then an exact barcode or product id, then a search that yields
// exactly one product.
func (s *ProductService) ResolveScan(ctx context.Context, code string) (*ScanResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "code", Message: "Code is required"},
		})
	}

	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].HasIMEI(code) {
			return &ScanResult{Product: &products[i], IMEI: code}, nil
		}
	}

	for i := range products {
		if products[i].ID == code || (products[i].Barcode != "" && products[i].Barcode == code) {
			return &ScanResult{Product: &products[i]}, nil
		}
	}

	if matches := searchForBilling(products, code); len(matches) == 1 {
		return &ScanResult{Product: &matches[0]}, nil
	}

	return nil, apperror.NewNotFoundError("Product")
}
