package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homefin/hearth/internal/service"
)

// TransferInput is the transfer creation request body. Amount bounds are
// left to the service so callers get the precise rejection reason.
type TransferInput struct {
	RecipientUsername string  `json:"recipient_username" validate:"required"`
	Amount            float64 `json:"amount"`
	Description       string  `json:"description" validate:"max=1000"`
}

func createTransfer(svc *service.TransferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[TransferInput](c)
		if input == nil {
			return err
		}

		transfer, err := svc.Create(c.Context(), Username(c), input.RecipientUsername, input.Amount, input.Description)
		if err != nil {
			return DomainError(c, err)
		}

		transfersTotal.Inc()
		return SuccessJSON(c, fiber.StatusCreated, "Transfer recorded", transfer)
	}
}

func transferHistory(svc *service.TransferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		history, err := svc.History(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Transfer history", history)
	}
}

func eligibleRecipients(svc *service.TransferService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipients, err := svc.Recipients(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Eligible recipients", recipients)
	}
}
