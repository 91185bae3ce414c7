// file: internals/features/tenants/controller/tenants_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/tenants/dto"
	model "schoolhub_backend/internals/features/tenants/model"
	helper "schoolhub_backend/internals/helpers"
)

type TenantsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTenantsController(db *gorm.DB) *TenantsController {
	return &TenantsController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /tenants
func (ctrl *TenantsController) Create(c *fiber.Ctx) error {
	var body dto.CreateTenantRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := body.ToModel()

	var existing int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TenantModel{}).
		Where("tenant_slug = ?", m.TenantSlug).
		Count(&existing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check slug")
	}
	if existing > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Tenant slug already in use")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create tenant")
	}
	return helper.JsonCreated(c, "Tenant created", dto.FromTenantModel(m))
}

// GET /tenants
func (ctrl *TenantsController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	tx := ctrl.DB.WithContext(c.UserContext()).Model(&model.TenantModel{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count tenants")
	}

	var items []model.TenantModel
	if err := tx.Order("tenant_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list tenants")
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	p.Count = len(items)
	return helper.JsonList(c, "Tenants fetched", dto.FromTenantModels(items), &p)
}

// GET /tenants/:slug
func (ctrl *TenantsController) GetBySlug(c *fiber.Ctx) error {
	slug := strings.ToLower(strings.TrimSpace(c.Params("slug")))
	if slug == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Slug is required")
	}

	var m model.TenantModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&m, "tenant_slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Tenant not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load tenant")
	}
	return helper.JsonOK(c, "Tenant fetched", dto.FromTenantModel(&m))
}
