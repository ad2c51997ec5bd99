package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homefin/hearth/internal/service"
)

// ContributionInput is the contribution creation request body. Amount
// bounds are left to the service so callers get the precise rejection
// reason.
type ContributionInput struct {
	Product     string  `json:"product_name" validate:"required,max=255"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description" validate:"max=1000"`
}

func addContribution(svc *service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[ContributionInput](c)
		if input == nil {
			return err
		}

		entry, err := svc.AddContribution(c.Context(), Username(c), input.Product, input.Amount, input.Description)
		if err != nil {
			return DomainError(c, err)
		}

		contributionsTotal.Inc()
		return SuccessJSON(c, fiber.StatusCreated, "Contribution added", entry)
	}
}

func listContributions(svc *service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// ?scope=home switches from the caller's own entries to the
		// whole home's, joined with display names.
		if c.Query("scope") == "home" {
			entries, err := svc.HomeContributions(c.Context(), Username(c))
			if err != nil {
				return DomainError(c, err)
			}
			return SuccessJSON(c, fiber.StatusOK, "Home contributions", entries)
		}

		entries, err := svc.MyContributions(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Contributions", entries)
	}
}

func deleteContribution(svc *service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.DeleteContribution(c.Context(), Username(c), c.Params("id")); err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Contribution deleted", nil)
	}
}

func balance(svc *service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		total, err := svc.Balance(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Balance", fiber.Map{"balance": total})
	}
}

func statistics(svc *service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Statistics(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Statistics", stats)
	}
}

func standing(svc *service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := svc.Standing(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Standing", s)
	}
}

func analytics(svc *service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := svc.Analytics(c.Context(), Username(c))
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Analytics", a)
	}
}

func monthlyContributions(svc *service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := c.QueryInt("year")
		month := c.QueryInt("month")
		if month != 0 && year == 0 {
			return ProblemJSON(c, fiber.StatusBadRequest, "Validation failed", "month requires year")
		}
		if month < 0 || month > 12 {
			return ProblemJSON(c, fiber.StatusBadRequest, "Validation failed", "month must be between 1 and 12")
		}

		entries, err := svc.MonthlyContributions(c.Context(), Username(c), year, month)
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Monthly contributions", entries)
	}
}

func monthlySummary(svc *service.LedgerService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		year := c.QueryInt("year")
		month := c.QueryInt("month")
		if year == 0 || month < 1 || month > 12 {
			return ProblemJSON(c, fiber.StatusBadRequest, "Validation failed", "year and month are required")
		}

		summary, err := svc.MonthlySummary(c.Context(), Username(c), year, month)
		if err != nil {
			return DomainError(c, err)
		}
		return SuccessJSON(c, fiber.StatusOK, "Monthly summary", summary)
	}
}
