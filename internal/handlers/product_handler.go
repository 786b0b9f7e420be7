package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"inventory/internal/models"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. Fixed paths come before /:id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/all", h.HandleGetAllProducts)
	productRoutes.Get("/search", h.HandleSearchProducts)
	productRoutes.Get("/low-stock", h.HandleGetLowStockProducts)
	productRoutes.Get("/low-stock/count", h.HandleCountLowStockProducts)
	productRoutes.Get("/count", h.HandleCountProducts)
	productRoutes.Get("/price-range", h.HandleGetProductsByPriceRange)
	productRoutes.Get("/category/:categoryId", h.HandleGetProductsByCategory)
	productRoutes.Get("/supplier/:supplierId", h.HandleGetProductsBySupplier)
	productRoutes.Get("/sku/:sku", h.HandleGetProductBySKU)
	productRoutes.Get("/check-sku/:sku", h.HandleCheckSKU)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Patch("/:id/stock", h.HandleUpdateStock)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

func pageRequest(c *fiber.Ctx) models.PageRequest {
	return models.PageRequest{
		Page:    c.QueryInt("page", 0),
		Size:    c.QueryInt("size", models.DefaultPageSize),
		SortBy:  c.Query("sort_by", "id"),
		SortDir: c.Query("sort_dir", "asc"),
	}
}

// HandleListProducts returns one page of products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page, err := h.service.ListProducts(pageRequest(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(page)
}

func (h *ProductHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleSearchProducts matches ?q against product name and SKU.
func (h *ProductHandler) HandleSearchProducts(c *fiber.Ctx) error {
	page, err := h.service.SearchProducts(c.Query("q"), pageRequest(c))
	if err != nil {
		return respondError(c, err, "Could not search products")
	}
	return c.JSON(page)
}

func (h *ProductHandler) HandleGetLowStockProducts(c *fiber.Ctx) error {
	products, err := h.service.GetLowStockProducts()
	if err != nil {
		return respondError(c, err, "Could not retrieve low stock products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleCountLowStockProducts(c *fiber.Ctx) error {
	count, err := h.service.CountLowStockProducts()
	if err != nil {
		return respondError(c, err, "Could not count low stock products")
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *ProductHandler) HandleCountProducts(c *fiber.Ctx) error {
	count, err := h.service.CountProducts()
	if err != nil {
		return respondError(c, err, "Could not count products")
	}
	return c.JSON(fiber.Map{"count": count})
}

// HandleGetProductsByPriceRange requires both min_price and max_price.
func (h *ProductHandler) HandleGetProductsByPriceRange(c *fiber.Ctx) error {
	min, err := decimal.NewFromString(c.Query("min_price"))
	if err != nil {
		return badRequest(c, "min_price must be a decimal number", err)
	}
	max, err := decimal.NewFromString(c.Query("max_price"))
	if err != nil {
		return badRequest(c, "max_price must be a decimal number", err)
	}
	products, err := h.service.GetProductsByPriceRange(min, max)
	if err != nil {
		return respondError(c, err, "Could not retrieve products by price range")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	products, err := h.service.GetProductsByCategory(c.Params("categoryId"))
	if err != nil {
		return respondError(c, err, "Could not retrieve products by category")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductsBySupplier(c *fiber.Ctx) error {
	products, err := h.service.GetProductsBySupplier(c.Params("supplierId"))
	if err != nil {
		return respondError(c, err, "Could not retrieve products by supplier")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductBySKU(c *fiber.Ctx) error {
	product, err := h.service.GetProductBySKU(c.Params("sku"))
	if err != nil {
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCheckSKU(c *fiber.Ctx) error {
	exists, err := h.service.SKUExists(c.Params("sku"))
	if err != nil {
		return respondError(c, err, "Could not check SKU")
	}
	return c.JSON(fiber.Map{"exists": exists})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product. A missing min_stock_level defaults to 10.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	created, err := h.service.CreateProduct(input.ToProduct())
	if err != nil {
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleUpdateProduct replaces the mutable fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	updated, err := h.service.UpdateProduct(c.Params("id"), input.ToProduct())
	if err != nil {
		return respondError(c, err, "Could not update product")
	}
	return c.JSON(updated)
}

// HandleUpdateStock reads the new quantity from ?quantity or a {"quantity": n} body.
func (h *ProductHandler) HandleUpdateStock(c *fiber.Ctx) error {
	quantity, err := stockQuantity(c)
	if err != nil {
		return badRequest(c, "quantity must be an integer", err)
	}
	updated, err := h.service.UpdateStock(c.Params("id"), quantity)
	if err != nil {
		return respondError(c, err, "Could not update stock")
	}
	return c.JSON(updated)
}

func stockQuantity(c *fiber.Ctx) (int, error) {
	if raw := strings.TrimSpace(c.Query("quantity")); raw != "" {
		q, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("invalid quantity %q", raw)
		}
		return q, nil
	}
	var body struct {
		Quantity *int `json:"quantity"`
	}
	if len(c.Body()) == 0 {
		return 0, fmt.Errorf("quantity is required")
	}
	if err := c.BodyParser(&body); err != nil {
		return 0, err
	}
	if body.Quantity == nil {
		return 0, fmt.Errorf("quantity is required")
	}
	return *body.Quantity, nil
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete product")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
