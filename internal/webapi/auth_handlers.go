package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homefin/hearth/internal/models"
	"github.com/homefin/hearth/internal/service"
)

// RegisterInput is the registration request body.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput is the login request body.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is the profile update request body.
type ProfileInput struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
}

// UserView is the API shape of a user, credentials omitted.
type UserView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Active    bool   `json:"is_active"`
	HomeID    string `json:"home_id,omitempty"`
	CreatedAt int64  `json:"date_created"`
}

func userView(u *models.User) UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Active:    u.Active,
		HomeID:    u.HomeID,
		CreatedAt: u.CreatedAt,
	}
}

func register(svc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[RegisterInput](c)
		if input == nil {
			return err
		}

		user, token, err := svc.Register(c.Context(), input.Username, input.Email, input.FullName, input.Password)
		if err != nil {
			return DomainError(c, err)
		}

		return SuccessJSON(c, fiber.StatusCreated, "User registered", fiber.Map{
			"user":  userView(user),
			"token": token,
		})
	}
}

func login(svc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}

		user, token, err := svc.Login(c.Context(), input.Username, input.Password)
		if err != nil {
			return DomainError(c, err)
		}

		return SuccessJSON(c, fiber.StatusOK, "Login successful", fiber.Map{
			"user":  userView(user),
			"token": token,
		})
	}
}

func currentUser(svc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := svc.CurrentUser(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Current user", userView(user))
	}
}

func updateProfile(svc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[ProfileInput](c)
		if input == nil {
			return err
		}

		user, err := svc.UpdateProfile(c.Context(), Username(c), input.FullName, input.Email)
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Profile updated", userView(user))
	}
}

func listUsers(svc *service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.ListUsers(c.Context())
		if err != nil {
			return DomainError(c, err)
		}

		views := make([]UserView, 0, len(users))
		for i := range users {
			views = append(views, userView(&users[i]))
		}
		return SuccessJSON(c, fiber.StatusOK, "Users", views)
	}
}
