package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doc-pager/cmd/api/dto"
	"doc-pager/cmd/api/services"
	"doc-pager/pagination"
	"doc-pager/repositories"
)

// ListAddressesHandler godoc
// @Summary      List addresses
// @Description  Offset pagination over addresses with optional filters and sort
// @Tags         addresses
// @Param        page     query  int     false  "Page number (1-based)"
// @Param        limit    query  int     false  "Page size (<=100)"
// @Param        sort     query  string  false  "Sort, e.g. -createdAt,total"
// @Param        city     query  string  false  "City (case-insensitive exact match)"
// @Param        status   query  string  false  "Status (active, inactive)"
// @Param        user_id  query  int     false  "User ID"
// @Produce      json
// @Success      200  {object}  dto.PaginationAddressDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /addresses [get]
func ListAddressesHandler(svc *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListAddressesInput
		in.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
		in.Limit, _ = strconv.Atoi(c.Query("limit"))
		in.Sort = c.Query("sort")
		in.City = c.Query("city")
		in.Status = c.Query("status")
		userID, ok := userIDQuery(c)
		if !ok {
			return
		}
		in.UserID = userID

		page, err := svc.List(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// ListAddressesAfterHandler godoc
// @Summary      List addresses by cursor
// @Description  Keyset pagination over addresses; pass next_cursor back as cursor
// @Tags         addresses
// @Param        cursor   query  string  false  "Cursor from the previous response"
// @Param        limit    query  int     false  "Window size (<=100)"
// @Param        sort     query  string  false  "Sort, e.g. -createdAt"
// @Param        city     query  string  false  "City (case-insensitive exact match)"
// @Param        status   query  string  false  "Status (active, inactive)"
// @Param        user_id  query  int     false  "User ID"
// @Produce      json
// @Success      200  {object}  dto.CursorAddressDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /addresses/cursor [get]
func ListAddressesAfterHandler(svc *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.ListAddressesAfterInput
		in.Cursor = c.Query("cursor")
		in.Limit, _ = strconv.Atoi(c.Query("limit"))
		in.Sort = c.Query("sort")
		in.City = c.Query("city")
		in.Status = c.Query("status")
		userID, ok := userIDQuery(c)
		if !ok {
			return
		}
		in.UserID = userID

		page, err := svc.ListAfter(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// CityFiltersHandler godoc
// @Summary      Get city filters
// @Description  Number of addresses per city, largest first
// @Tags         addresses
// @Produce      json
// @Success      200  {object}  dto.CityFilterDTO
// @Router       /addresses/filters/cities [get]
func CityFiltersHandler(svc *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.CityFilters(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// UserTotalsHandler godoc
// @Summary      Spend per user
// @Description  Sum of order totals and order count per user, optionally for one city
// @Tags         addresses
// @Param        city  query  string  false  "City"
// @Produce      json
// @Success      200  {object}  dto.UserTotalsDTO
// @Router       /addresses/totals [get]
func UserTotalsHandler(svc *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.Totals(c.Request.Context(), c.Query("city"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DeleteAddressHandler godoc
// @Summary      Delete address
// @Description  Delete a single address by order number
// @Tags         addresses
// @Param        order_number  path  string  true  "Order number"
// @Produce      json
// @Success      200  {object}  dto.MessageResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /addresses/{order_number} [delete]
func DeleteAddressHandler(svc *services.AddressService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("order_number")); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageResponseDTO{Message: "deleted"})
	}
}

// userIDQuery parses the optional user_id query; on a malformed value it writes 400.
func userIDQuery(c *gin.Context) (*int, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "user_id must be an integer"})
		return nil, false
	}
	return &id, true
}

// writeError maps service errors to a status code and the common error body.
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), dto.ErrorResponseDTO{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, pagination.ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, pagination.ErrCanceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
