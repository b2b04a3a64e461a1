package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"targ/internal/domain/discovery"
	"targ/internal/domain/entity"
	"targ/internal/domain/repository"
	"targ/internal/usecase"
	"targ/pkg/errors"
	"targ/pkg/response"
	"targ/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

// splitList reads a comma separated query parameter.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func priceBounds(c echo.Context) (*float64, *float64, error) {
	minPrice, err := utils.ParseOptionalFloat(c.QueryParam("min_price"))
	if err != nil {
		return nil, nil, errors.BadRequest("Invalid min_price", err)
	}
	maxPrice, err := utils.ParseOptionalFloat(c.QueryParam("max_price"))
	if err != nil {
		return nil, nil, errors.BadRequest("Invalid max_price", err)
	}
	return minPrice, maxPrice, nil
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	minPrice, maxPrice, err := priceBounds(c)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	query := repository.ListingQuery{
		Filters: repository.ListingFilter{
			Category:    c.QueryParam("category"),
			Subcategory: c.QueryParam("subcategory"),
			Location:    c.QueryParam("location"),
			Condition:   c.QueryParam("condition"),
			SearchQuery: c.QueryParam("q"),
			MinPrice:    minPrice,
			MaxPrice:    maxPrice,
			ExcludeSold: c.QueryParam("include_sold") != "true",
		},
		PageSize: pagination.PageSize,
		Cursor:   c.QueryParam("cursor"),
	}

	page, err := h.listingUseCase.List(c.Request().Context(), query)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Cursor(c, page.Listings, page.NextCursor, page.HasMore)
}

func (h *ListingHandler) SearchListings(c echo.Context) error {
	minPrice, maxPrice, err := priceBounds(c)
	if err != nil {
		return response.Error(c, err)
	}
	negotiable, err := utils.ParseOptionalBool(c.QueryParam("negotiable"))
	if err != nil {
		return response.Error(c, errors.BadRequest("Invalid negotiable flag", err))
	}

	currency := entity.Currency(strings.ToUpper(c.QueryParam("currency")))
	if currency != "" && !currency.Valid() {
		return response.Error(c, errors.BadRequest("Unsupported currency", nil))
	}

	pagination := utils.GetPaginationParams(c)
	query := discovery.Query{
		Filter: discovery.Filter{
			Query:       c.QueryParam("q"),
			Category:    splitList(c.QueryParam("category")),
			Subcategory: c.QueryParam("subcategory"),
			Location:    c.QueryParam("location"),
			MinPrice:    minPrice,
			MaxPrice:    maxPrice,
			Currency:    currency,
			Condition:   splitList(c.QueryParam("condition")),
			Negotiable:  negotiable,
		},
		Sort:     discovery.ParseSortOrder(c.QueryParam("sort")),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
		View:     discovery.ParseView(c.QueryParam("view")),
	}

	page, err := h.listingUseCase.Search(c.Request().Context(), query)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, page)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	listingID := c.Param("id")
	if listingID == "" {
		return response.Error(c, errors.BadRequest("Listing ID is required", nil))
	}

	detail, err := h.listingUseCase.Get(c.Request().Context(), listingID, viewerID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, detail)
}

func (h *ListingHandler) ListSellerListings(c echo.Context) error {
	listings, err := h.listingUseCase.ListBySeller(c.Request().Context(), c.Param("id"), viewerID(c))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	userID := c.Get("uid").(string)

	listings, err := h.listingUseCase.ListBySeller(c.Request().Context(), userID, userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	userID := c.Get("uid").(string)

	var input usecase.CreateListingInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	listing, err := h.listingUseCase.Create(c.Request().Context(), userID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	userID := c.Get("uid").(string)

	var input usecase.UpdateListingInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	listing, err := h.listingUseCase.Update(c.Request().Context(), c.Param("id"), userID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.listingUseCase.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Listing deleted successfully",
	})
}

func (h *ListingHandler) MarkSold(c echo.Context) error {
	userID := c.Get("uid").(string)

	var input usecase.MarkSoldInput
	if err := c.Bind(&input); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	listing, err := h.listingUseCase.MarkSold(c.Request().Context(), c.Param("id"), userID, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}
