package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	productService *services.ProductService
	validate       *validator.Validate
	maxImageBytes  int64
}

// NewProductHandler creates a new ProductHandler. Uploaded files larger than
// maxImageBytes are rejected; zero disables the check.
func NewProductHandler(productService *services.ProductService, maxImageBytes int64) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
		maxImageBytes:  maxImageBytes,
	}
}

// RegisterRoutes registers the product routes under /products.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	// Must be registered before /:category.
	productRoutes.Get("/product/:id", h.HandleGetProduct)
	productRoutes.Get("/:category", h.HandleListByCategory)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// CreateProductRequest lists the fields a client may set on a new product.
type CreateProductRequest struct {
	Name        string   `json:"name" form:"name" validate:"required"`
	Description string   `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price" validate:"required,gte=0"`
	MRP         float64  `json:"mrp" form:"mrp" validate:"gte=0"`
	Discount    float64  `json:"discount" form:"discount"`
	Title       string   `json:"title" form:"title"`
	BankName    string   `json:"bankname" form:"bankname"`
	BankOffer   float64  `json:"bankOffer" form:"bankOffer"`
	Category    string   `json:"category" form:"category" validate:"required"`
	TextColor   string   `json:"textColor" form:"textColor"`
	BgColor     string   `json:"bgColor" form:"bgColor"`
	CreatedBy   string   `json:"createdBy" form:"createdBy"`
}

func (r *CreateProductRequest) product() *models.Product {
	return &models.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		MRP:         r.MRP,
		Discount:    r.Discount,
		Title:       r.Title,
		BankName:    r.BankName,
		BankOffer:   r.BankOffer,
		Category:    r.Category,
		TextColor:   r.TextColor,
		BgColor:     r.BgColor,
		CreatedBy:   r.CreatedBy,
	}
}

// UpdateProductRequest is a partial product. Absent fields keep their
// stored values.
type UpdateProductRequest struct {
	Name        *string  `json:"name" form:"name" validate:"omitempty,min=1"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"price" form:"price" validate:"omitempty,gte=0"`
	MRP         *float64 `json:"mrp" form:"mrp" validate:"omitempty,gte=0"`
	Discount    *float64 `json:"discount" form:"discount"`
	Title       *string  `json:"title" form:"title"`
	BankName    *string  `json:"bankname" form:"bankname"`
	BankOffer   *float64 `json:"bankOffer" form:"bankOffer"`
	Category    *string  `json:"category" form:"category"`
	TextColor   *string  `json:"textColor" form:"textColor"`
	BgColor     *string  `json:"bgColor" form:"bgColor"`
	CreatedBy   *string  `json:"createdBy" form:"createdBy"`
}

func (r *UpdateProductRequest) patch() services.ProductPatch {
	return services.ProductPatch{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		MRP:         r.MRP,
		Discount:    r.Discount,
		Title:       r.Title,
		BankName:    r.BankName,
		BankOffer:   r.BankOffer,
		Category:    r.Category,
		TextColor:   r.TextColor,
		BgColor:     r.BgColor,
		CreatedBy:   r.CreatedBy,
	}
}

// HandleListProducts lists products, optionally filtered by ?category and
// ?createdBy.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	products, err := h.productService.ListProducts(c.UserContext(), repositories.ProductFilter{
		Category:  c.Query("category"),
		CreatedBy: c.Query("createdBy"),
	})
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleListByCategory(c *fiber.Ctx) error {
	products, err := h.productService.ListProducts(c.UserContext(), repositories.ProductFilter{
		Category: c.Params("category"),
	})
	if err != nil {
		return err
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	product, err := h.productService.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct accepts multipart fields plus up to five image files,
// or a plain JSON body without images.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := parseAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	uploads, err := readUploads(c, h.maxImageBytes)
	if err != nil {
		return err
	}

	product, err := h.productService.CreateProduct(c.UserContext(), req.product(), uploads)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product created successfully",
		"product": product,
	})
}

// HandleUpdateProduct merges the submitted fields into the stored product.
// Submitting any image replaces all of the product's images.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := parseAndValidate(c, h.validate, &req); err != nil {
		return err
	}

	uploads, err := readUploads(c, h.maxImageBytes)
	if err != nil {
		return err
	}

	product, err := h.productService.UpdateProduct(c.UserContext(), c.Params("id"), req.patch(), uploads)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"product": product,
	})
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.productService.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
