package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"doc-pager/cmd/api/dto"
	"doc-pager/cmd/api/metrics"
	"doc-pager/models"
	"doc-pager/pagination"
	"doc-pager/repositories"
)

const DefaultUserSort = "-createdAt"

var userSortFields = []string{"_id", "createdAt", "name", "skill"}

// UserStore is the part of repositories.UserRepository the service needs.
type UserStore interface {
	Source() pagination.Source[models.User]
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

var _ UserStore = (*repositories.UserRepository)(nil)

type UserService struct {
	store  UserStore
	engine *pagination.Engine
}

func NewUserService(store UserStore, engine *pagination.Engine) *UserService {
	return &UserService{store: store, engine: engine}
}

func (s *UserService) Create(ctx context.Context, in dto.CreateUserRequest) (dto.UserDTO, error) {
	u := models.User{Name: in.Name, Skill: in.Skill}
	if err := s.store.Insert(ctx, &u); err != nil {
		return dto.UserDTO{}, err
	}
	return dto.NewUserDTO(u), nil
}

// List returns one offset page of users, newest first unless sortRaw says otherwise.
func (s *UserService) List(ctx context.Context, page, limit int, sortRaw string) (dto.Pagination[dto.UserDTO], error) {
	const op = "list users"
	sort, err := parseSort(op, sortRaw, DefaultUserSort, userSortFields)
	if err != nil {
		metrics.RecordRequest(metrics.ModeOffset, err, 0)
		return dto.Pagination[dto.UserDTO]{}, err
	}

	start := time.Now()
	p, err := pagination.PaginateByOffset(ctx, s.engine, s.store.Source(), pagination.Request{
		Page:  page,
		Limit: limit,
		Sort:  sort,
	})
	elapsed := time.Since(start)
	metrics.RecordRequest(metrics.ModeOffset, err, elapsed.Seconds())
	logQuery(ctx, op, metrics.ModeOffset, sort, elapsed, err)
	if err != nil {
		return dto.Pagination[dto.UserDTO]{}, err
	}
	return dto.NewPagination(p, dto.NewUserDTO), nil
}

// GetByID loads a user by its ObjectID hex; a malformed id is reported as not found.
func (s *UserService) GetByID(ctx context.Context, hexID string) (dto.UserDTO, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return dto.UserDTO{}, repositories.ErrNotFound
	}
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return dto.UserDTO{}, err
	}
	return dto.NewUserDTO(*u), nil
}
