package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/realty-service/internal/api/dto"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/search"
	"github.com/spec-kit/realty-service/internal/service"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// PropertiesHandler exposes public search and agent listing management.
type PropertiesHandler struct {
	service *service.PropertyService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(propertyService *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{service: propertyService}
}

// Search GET /properties.
func (h *PropertiesHandler) Search(c *fiber.Ctx) error {
	criteria, err := parseSearchQuery(c)
	if err != nil {
		return err
	}
	properties, meta, err := h.service.Search(c.Context(), criteria)
	if err != nil {
		return err
	}
	return c.JSON(dto.SearchResponse{
		Data:       dto.FromProperties(properties),
		Pagination: meta,
	})
}

// Get GET /properties/:id.
func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	property, err := h.service.GetPublic(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProperty(property)})
}

// Create POST /properties. Reached only through the approved-agent gate.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	input, err := parsePropertyBody(c)
	if err != nil {
		return err
	}
	property, err := h.service.Create(c.Context(), principal.Agent.ID, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromProperty(property)})
}

// Update PUT /properties/:id.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	input, err := parsePropertyBody(c)
	if err != nil {
		return err
	}
	property, err := h.service.Update(c.Context(), principal.Agent.ID, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProperty(property)})
}

// Delete DELETE /properties/:id.
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	if err := h.service.Delete(c.Context(), principal.Agent.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListMine GET /agents/me/properties.
func (h *PropertiesHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	limit, offset, err := parsePagination(c)
	if err != nil {
		return err
	}
	properties, err := h.service.ListForAgent(c.Context(), principal.Agent.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromProperties(properties)})
}

// parseSearchQuery maps query-string parameters 1:1 onto search criteria.
// Malformed values are rejected here; the compiler assumes criteria carry
// the correct semantic types.
func parseSearchQuery(c *fiber.Ctx) (search.Criteria, error) {
	criteria := search.Criteria{}

	if q := c.Query("query"); q != "" {
		criteria.Query = &q
	}
	if lt := c.Query("listing_type"); lt != "" {
		listingType := domain.ListingType(lt)
		if !domain.ValidListingType(listingType) {
			return criteria, apperrors.NewValidationError("invalid listing_type", fiber.Map{"listing_type": lt})
		}
		criteria.ListingType = &listingType
	}
	for _, raw := range c.Context().QueryArgs().PeekMulti("property_type") {
		propertyType := domain.PropertyType(raw)
		if !domain.ValidPropertyType(propertyType) {
			return criteria, apperrors.NewValidationError("invalid property_type", fiber.Map{"property_type": string(raw)})
		}
		criteria.PropertyTypes = append(criteria.PropertyTypes, propertyType)
	}

	var err error
	if criteria.MinPrice, err = parseFloatParam(c, "min_price"); err != nil {
		return criteria, err
	}
	if criteria.MaxPrice, err = parseFloatParam(c, "max_price"); err != nil {
		return criteria, err
	}
	if criteria.MinSquareFeet, err = parseFloatParam(c, "min_sqft"); err != nil {
		return criteria, err
	}
	if criteria.MaxSquareFeet, err = parseFloatParam(c, "max_sqft"); err != nil {
		return criteria, err
	}
	if criteria.MinBedrooms, err = parseIntParam(c, "bedrooms"); err != nil {
		return criteria, err
	}
	if criteria.MinBathrooms, err = parseIntParam(c, "bathrooms"); err != nil {
		return criteria, err
	}
	if criteria.Furnished, err = parseBoolParam(c, "furnished"); err != nil {
		return criteria, err
	}
	if criteria.PetFriendly, err = parseBoolParam(c, "pet_friendly"); err != nil {
		return criteria, err
	}
	if criteria.Featured, err = parseBoolParam(c, "is_featured"); err != nil {
		return criteria, err
	}

	if city := c.Query("city"); city != "" {
		criteria.City = &city
	}
	if state := c.Query("state"); state != "" {
		criteria.State = &state
	}
	criteria.SortBy = c.Query("sort_by")
	criteria.SortOrder = c.Query("sort_order")

	limit, offset, err := parsePagination(c)
	if err != nil {
		return criteria, err
	}
	criteria.Limit = limit
	criteria.Offset = offset
	return criteria, nil
}

func parsePropertyBody(c *fiber.Ctx) (service.PropertyCreateInput, error) {
	var req dto.PropertyRequest
	if err := c.BodyParser(&req); err != nil {
		return service.PropertyCreateInput{}, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.State) == "" {
		return service.PropertyCreateInput{}, apperrors.NewValidationError("title, city, state required", nil)
	}
	if !domain.ValidListingType(req.ListingType) {
		return service.PropertyCreateInput{}, apperrors.NewValidationError("invalid listing_type", nil)
	}
	if !domain.ValidPropertyType(req.PropertyType) {
		return service.PropertyCreateInput{}, apperrors.NewValidationError("invalid property_type", nil)
	}
	if req.Price < 0 {
		return service.PropertyCreateInput{}, apperrors.NewValidationError("price must be non-negative", nil)
	}
	return service.PropertyCreateInput{
		Title:         req.Title,
		Description:   req.Description,
		ListingType:   req.ListingType,
		PropertyType:  req.PropertyType,
		Status:        req.Status,
		Price:         req.Price,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SquareFootage: req.SquareFootage,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Furnished:     req.Furnished,
		PetFriendly:   req.PetFriendly,
		Featured:      req.Featured,
	}, nil
}

func parsePagination(c *fiber.Ctx) (int, int, error) {
	limit := 0
	offset := 0
	if val := c.Query("limit"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return 0, 0, apperrors.NewValidationError("invalid limit", fiber.Map{"limit": val})
		}
		limit = parsed
	}
	if val := c.Query("offset"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return 0, 0, apperrors.NewValidationError("invalid offset", fiber.Map{"offset": val})
		}
		offset = parsed
	}
	return limit, offset, nil
}

func parseFloatParam(c *fiber.Ctx, name string) (*float64, error) {
	val := c.Query(name)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+name, fiber.Map{name: val})
	}
	return &parsed, nil
}

func parseIntParam(c *fiber.Ctx, name string) (*int, error) {
	val := c.Query(name)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+name, fiber.Map{name: val})
	}
	return &parsed, nil
}

func parseBoolParam(c *fiber.Ctx, name string) (*bool, error) {
	val := c.Query(name)
	if val == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid "+name, fiber.Map{name: val})
	}
	return &parsed, nil
}
