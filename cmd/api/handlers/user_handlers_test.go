package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"doc-pager/cmd/api/dto"
	"doc-pager/cmd/api/services"
	"doc-pager/models"
	"doc-pager/pagination"
	"doc-pager/repositories"
)

type stubUserSource struct{ items []models.User }

func (s *stubUserSource) Find(_ context.Context, _ pagination.Filter, _ pagination.Sort, skip, limit int64) ([]models.User, error) {
	if int(skip) >= len(s.items) {
		return []models.User{}, nil
	}
	return s.items[skip:min(int(skip+limit), len(s.items))], nil
}

func (s *stubUserSource) Count(context.Context, pagination.Filter) (int64, error) {
	return int64(len(s.items)), nil
}

func (s *stubUserSource) FindAfter(context.Context, pagination.Filter, pagination.Sort, string, int64) ([]models.User, error) {
	return []models.User{}, nil
}

func (s *stubUserSource) CursorOf(u models.User, _ pagination.Sort) (string, error) {
	return u.ID.Hex(), nil
}

type stubUserStore struct {
	src   *stubUserSource
	users map[primitive.ObjectID]models.User
}

func (s *stubUserStore) Source() pagination.Source[models.User] { return s.src }

func (s *stubUserStore) Insert(_ context.Context, u *models.User) error {
	for _, existing := range s.users {
		if existing.Name == u.Name {
			return repositories.ErrAlreadyExists
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	s.src.items = append(s.src.items, *u)
	return nil
}

func (s *stubUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func newUserRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := &stubUserStore{src: &stubUserSource{}, users: map[primitive.ObjectID]models.User{}}
	svc := services.NewUserService(store, pagination.New(pagination.DefaultConfig()))
	r := gin.New()
	r.POST("/users", CreateUserHandler(svc))
	r.GET("/users", ListUsersHandler(svc))
	r.GET("/users/:id", GetUserHandler(svc))
	return r
}

func postJSON(r *gin.Engine, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserHandlers(t *testing.T) {
	r := newUserRouter()

	w := postJSON(r, "/users", `{"name":"Ada","skill":"go"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Ada", created.Name)

	w = do(r, http.MethodGet, "/users/"+created.ID)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/users")
	require.Equal(t, http.StatusOK, w.Code)
	var list dto.PaginationUserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)
	assert.Equal(t, int64(1), list.Pagination.TotalItems)

	assert.Equal(t, http.StatusConflict, postJSON(r, "/users", `{"name":"Ada"}`).Code)
}

func TestUserHandlersErrors(t *testing.T) {
	r := newUserRouter()

	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/users", `{"skill":"go"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/users", `not json`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/users/not-an-id").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/users/"+primitive.NewObjectID().Hex()).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/users?sort=total").Code)
}
