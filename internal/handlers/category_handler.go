package handlers

import (
	"log"

	"catalogs/internal/middleware"
	"catalogs/internal/models"
	"catalogs/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories. All routes require an
// authenticated user.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// HandleCreateCategory creates a new category owned by the current user.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	category, err := h.service.Create(middleware.CurrentUser(c), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleListCategories lists the current user's categories.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.List(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleGetCategory retrieves a single owned category by its ID.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.Get(middleware.CurrentUser(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleUpdateCategory applies a partial update to an owned category. Fields
// absent from the body are left untouched.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	var upd models.CategoryUpdate
	if err := c.BodyParser(&upd); err != nil {
		log.Printf("Error parsing update category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(upd); err != nil {
		return respondValidationError(c, err)
	}

	category, err := h.service.Update(middleware.CurrentUser(c), c.Params("id"), upd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(category)
}

// HandleDeleteCategory deletes an owned category, unless products still
// reference it.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.Delete(middleware.CurrentUser(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}
