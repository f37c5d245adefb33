package dto

import (
	"time"

	"doc-pager/models"
)

type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Skill     string    `json:"skill"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserDTO(u models.User) UserDTO {
	return UserDTO{ID: u.ID.Hex(), Name: u.Name, Skill: u.Skill, CreatedAt: u.CreatedAt}
}

// CreateUserRequest is the body of POST /users
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required" example:"Ada"`
	Skill string `json:"skill" example:"go"`
}
