package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"doc-pager/cmd/api/dto"
	"doc-pager/cmd/api/services"
)

// CreateUserHandler godoc
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Param        body  body  dto.CreateUserRequest  true  "User"
// @Produce      json
// @Success      201  {object}  dto.UserDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /users [post]
func CreateUserHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
			return
		}
		u, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, u)
	}
}

// ListUsersHandler godoc
// @Summary      List users
// @Tags         users
// @Param        page   query  int     false  "Page number (1-based)"
// @Param        limit  query  int     false  "Page size (<=100)"
// @Param        sort   query  string  false  "Sort, e.g. name"
// @Produce      json
// @Success      200  {object}  dto.PaginationUserDTO
// @Router       /users [get]
func ListUsersHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.Query("limit"))
		resp, err := svc.List(c.Request.Context(), page, limit, c.Query("sort"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetUserHandler godoc
// @Summary      Get user by id
// @Tags         users
// @Param        id   path   string  true  "ObjectID"
// @Produce      json
// @Success      200  {object}  dto.UserDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /users/{id} [get]
func GetUserHandler(svc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}
