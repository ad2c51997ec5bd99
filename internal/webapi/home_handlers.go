package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homefin/hearth/internal/service"
)

// CreateHomeInput is the home creation request body.
type CreateHomeInput struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

// AddMemberInput names the user the leader wants to add.
type AddMemberInput struct {
	Username string `json:"username" validate:"required"`
}

// JoinRequestInput names the home the caller wants to join.
type JoinRequestInput struct {
	HomeName string `json:"home_name" validate:"required"`
}

func createHome(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreateHomeInput](c)
		if input == nil {
			return err
		}

		home, err := svc.Create(c.Context(), Username(c), input.Name, input.Description)
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, "Home created", home)
	}
}

func myHome(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		home, err := svc.MyHome(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Home", home)
	}
}

func homeMembers(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		members, err := svc.Members(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}

		views := make([]UserView, 0, len(members))
		for i := range members {
			views = append(views, userView(&members[i]))
		}
		return SuccessJSON(c, fiber.StatusOK, "Members", views)
	}
}

func addMember(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AddMemberInput](c)
		if input == nil {
			return err
		}

		if err := svc.AddMember(c.Context(), Username(c), input.Username); err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Member added", nil)
	}
}

func removeMember(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.RemoveMember(c.Context(), Username(c), c.Params("username")); err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Member removed", nil)
	}
}

func leaveHome(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Leave(c.Context(), Username(c)); err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Left home", nil)
	}
}

func createJoinRequest(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[JoinRequestInput](c)
		if input == nil {
			return err
		}

		req, err := svc.RequestJoin(c.Context(), Username(c), input.HomeName)
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusCreated, "Join request created", req)
	}
}

func myJoinRequest(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := svc.MyPendingRequest(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Pending request", req)
	}
}

func pendingJoinRequests(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqs, err := svc.PendingRequests(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Pending requests", reqs)
	}
}

func approveJoinRequest(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.ApproveRequest(c.Context(), Username(c), c.Params("id")); err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Join request approved", nil)
	}
}

func rejectJoinRequest(svc *service.HomeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.RejectRequest(c.Context(), Username(c), c.Params("id")); err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Join request rejected", nil)
	}
}
