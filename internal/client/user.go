package client

import (
	"context"
	"fmt"

	"github.com/fjod/shopease/internal/domain"
)

type UserClient struct {
	*Client
}

func NewUserClient(c *Client) *UserClient {
	return &UserClient{Client: c}
}

type registerRequestDTO struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Register creates an account. The server answers with the user only; a
// session is established by a following Login.
func (c *UserClient) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	req := registerRequestDTO{
		Username:  reg.Username,
		Email:     reg.Email,
		Password:  reg.Password,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
	}

	var resp struct {
		Message string  `json:"message"`
		User    userDTO `json:"user"`
	}
	if err := c.post(ctx, "/users/register", req, &resp); err != nil {
		return domain.User{}, fmt.Errorf("register: %w", err)
	}
	return resp.User.toDomain(), nil
}

type loginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *UserClient) Login(ctx context.Context, username, password string) (domain.Session, error) {
	var resp struct {
		Message string  `json:"message"`
		Token   string  `json:"token"`
		User    userDTO `json:"user"`
	}
	err := c.post(ctx, "/users/login", loginRequestDTO{Username: username, Password: password}, &resp)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	return domain.Session{User: resp.User.toDomain(), Token: resp.Token}, nil
}

// List returns all users. Admin view.
func (c *UserClient) List(ctx context.Context) ([]domain.User, error) {
	var dtos []userDTO
	if err := c.get(ctx, "/users", &dtos); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]domain.User, 0, len(dtos))
	for _, d := range dtos {
		users = append(users, d.toDomain())
	}
	return users, nil
}
