package handlers

import (
	"inventory/internal/models"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SupplierHandler handles HTTP requests for suppliers.
type SupplierHandler struct {
	service *services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(service *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		service: service,
	}
}

// RegisterRoutes registers the supplier routes with the Fiber app.
func (h *SupplierHandler) RegisterRoutes(router fiber.Router) {
	supplierRoutes := router.Group("/suppliers")
	supplierRoutes.Get("/", h.HandleGetSuppliers)
	supplierRoutes.Get("/search", h.HandleSearchSuppliers)
	supplierRoutes.Get("/count", h.HandleCountSuppliers)
	supplierRoutes.Get("/email/:email", h.HandleGetSupplierByEmail)
	supplierRoutes.Get("/:id", h.HandleGetSupplierByID)
	supplierRoutes.Post("/", h.HandleCreateSupplier)
	supplierRoutes.Put("/:id", h.HandleUpdateSupplier)
	supplierRoutes.Delete("/:id", h.HandleDeleteSupplier)
}

func (h *SupplierHandler) HandleGetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.GetAllSuppliers()
	if err != nil {
		return respondError(c, err, "Could not retrieve suppliers")
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) HandleSearchSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.SearchSuppliers(c.Query("q"))
	if err != nil {
		return respondError(c, err, "Could not search suppliers")
	}
	return c.JSON(suppliers)
}

func (h *SupplierHandler) HandleCountSuppliers(c *fiber.Ctx) error {
	count, err := h.service.CountSuppliers()
	if err != nil {
		return respondError(c, err, "Could not count suppliers")
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *SupplierHandler) HandleGetSupplierByID(c *fiber.Ctx) error {
	supplier, err := h.service.GetSupplierByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve supplier")
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) HandleGetSupplierByEmail(c *fiber.Ctx) error {
	supplier, err := h.service.GetSupplierByEmail(c.Params("email"))
	if err != nil {
		return respondError(c, err, "Could not retrieve supplier")
	}
	return c.JSON(supplier)
}

func (h *SupplierHandler) HandleCreateSupplier(c *fiber.Ctx) error {
	var supplier models.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	created, err := h.service.CreateSupplier(&supplier)
	if err != nil {
		return respondError(c, err, "Could not create supplier")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *SupplierHandler) HandleUpdateSupplier(c *fiber.Ctx) error {
	var supplier models.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	updated, err := h.service.UpdateSupplier(c.Params("id"), &supplier)
	if err != nil {
		return respondError(c, err, "Could not update supplier")
	}
	return c.JSON(updated)
}

// HandleDeleteSupplier answers 409 while products still reference the supplier.
func (h *SupplierHandler) HandleDeleteSupplier(c *fiber.Ctx) error {
	if err := h.service.DeleteSupplier(c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete supplier")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
