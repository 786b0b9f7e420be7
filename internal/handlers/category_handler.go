package handlers

import (
	"inventory/internal/models"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/search", h.HandleSearchCategories)
	categoryRoutes.Get("/count", h.HandleCountCategories)
	categoryRoutes.Get("/name/:name", h.HandleGetCategoryByName)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		return respondError(c, err, "Could not retrieve categories")
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleSearchCategories(c *fiber.Ctx) error {
	categories, err := h.service.SearchCategories(c.Query("q"))
	if err != nil {
		return respondError(c, err, "Could not search categories")
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleCountCategories(c *fiber.Ctx) error {
	count, err := h.service.CountCategories()
	if err != nil {
		return respondError(c, err, "Could not count categories")
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByID(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleGetCategoryByName(c *fiber.Ctx) error {
	category, err := h.service.GetCategoryByName(c.Params("name"))
	if err != nil {
		return respondError(c, err, "Could not retrieve category")
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	created, err := h.service.CreateCategory(&category)
	if err != nil {
		return respondError(c, err, "Could not create category")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return badRequest(c, "Invalid request body", err)
	}
	updated, err := h.service.UpdateCategory(c.Params("id"), &category)
	if err != nil {
		return respondError(c, err, "Could not update category")
	}
	return c.JSON(updated)
}

// HandleDeleteCategory answers 409 while products still reference the category.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete category")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
