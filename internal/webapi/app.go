package webapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/homefin/hearth/internal/auth"
	"github.com/homefin/hearth/internal/service"
)

// Services bundles the application services the API layer depends on.
type Services struct {
	Auth     *service.AuthService
	Home     *service.HomeService
	Ledger   *service.LedgerService
	Transfer *service.TransferService
}

// New builds the Fiber application with all routes registered.
func New(jwtManager *auth.JWTManager, svcs Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "hearth",
		DisableStartupMessage: true,
	})

	app.Use(RequestLogging())
	app.Use(Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", MetricsHandler())

	api := app.Group("/api/v1")

	api.Post("/auth/register", register(svcs.Auth))
	api.Post("/auth/login", login(svcs.Auth))

	protected := api.Group("", RequireAuth(jwtManager))

	protected.Get("/auth/me", currentUser(svcs.Auth))
	protected.Put("/auth/profile", updateProfile(svcs.Auth))
	protected.Get("/users", listUsers(svcs.Auth))

	protected.Post("/home", createHome(svcs.Home))
	protected.Get("/home", myHome(svcs.Home))
	protected.Get("/home/members", homeMembers(svcs.Home))
	protected.Post("/home/members", addMember(svcs.Home))
	protected.Delete("/home/members/:username", removeMember(svcs.Home))
	protected.Post("/home/leave", leaveHome(svcs.Home))

	protected.Post("/join-requests", createJoinRequest(svcs.Home))
	protected.Get("/join-requests/mine", myJoinRequest(svcs.Home))
	protected.Get("/join-requests", pendingJoinRequests(svcs.Home))
	protected.Post("/join-requests/:id/approve", approveJoinRequest(svcs.Home))
	protected.Post("/join-requests/:id/reject", rejectJoinRequest(svcs.Home))

	protected.Post("/contributions", addContribution(svcs.Ledger))
	protected.Get("/contributions", listContributions(svcs.Ledger))
	protected.Delete("/contributions/:id", deleteContribution(svcs.Ledger))
	protected.Get("/balance", balance(svcs.Ledger))
	protected.Get("/standing", standing(svcs.Ledger))
	protected.Get("/statistics", statistics(svcs.Ledger))

	protected.Get("/analytics", analytics(svcs.Ledger))
	protected.Get("/analytics/monthly", monthlyContributions(svcs.Ledger))
	protected.Get("/analytics/summary", monthlySummary(svcs.Ledger))

	protected.Post("/transfers", createTransfer(svcs.Transfer))
	protected.Get("/transfers", transferHistory(svcs.Transfer))
	protected.Get("/transfers/recipients", eligibleRecipients(svcs.Transfer))

	return app
}
