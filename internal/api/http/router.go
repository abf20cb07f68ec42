package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/redesmx/isp-backoffice/internal/api/http/handlers"
	"github.com/redesmx/isp-backoffice/internal/auth"
	"github.com/redesmx/isp-backoffice/internal/domain"
	"github.com/redesmx/isp-backoffice/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Public         *handlers.PublicHandler
	Staff          *handlers.StaffHandler
	StaffTickets   *handlers.StaffTicketsHandler
	Customers      *handlers.CustomersHandler
	Contracts      *handlers.ContractsHandler
	Payments       *handlers.PaymentsHandler
	WorkOrders     *handlers.WorkOrdersHandler
	Audit          *handlers.AuditHandler
	AuthMiddleware *auth.AuthMiddleware
	Limiter        *ratelimit.Limiter
}

// RegisterRoutes wires HTTP routes. Public endpoints carry per-client
// admission limits; staff endpoints require a bearer token and role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	public := app.Group("/public")
	public.Post("/tickets",
		ratelimit.Middleware(cfg.Limiter, ratelimit.LimitCreateTicket),
		cfg.Public.CreateTicket)
	public.Get("/tickets/:folio",
		ratelimit.Middleware(cfg.Limiter, ratelimit.LimitTrackFolio),
		cfg.Public.TrackTicket)
	public.Get("/coverage",
		ratelimit.Middleware(cfg.Limiter, ratelimit.LimitCoverageCheck),
		cfg.Public.CheckCoverage)
	public.Get("/packages",
		ratelimit.Middleware(cfg.Limiter, ratelimit.LimitDefault),
		cfg.Public.ListPackages)

	authGroup := app.Group("/auth")
	authGroup.Post("/staff/login",
		ratelimit.Middleware(cfg.Limiter, ratelimit.LimitLogin),
		cfg.Staff.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Staff.ChangePassword)

	staff := app.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireStaffRole())

	staff.Get("/tickets", cfg.StaffTickets.ListTickets)
	staff.Get("/tickets/:id", cfg.StaffTickets.GetTicket)
	staff.Patch("/tickets/:id/status", cfg.StaffTickets.UpdateStatus)
	staff.Patch("/tickets/:id/priority", cfg.StaffTickets.UpdatePriority)
	staff.Post("/tickets/:id/assign",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.StaffTickets.AssignTicket)

	staff.Get("/customers", cfg.Customers.ListCustomers)
	staff.Post("/customers", cfg.Customers.CreateCustomer)
	staff.Get("/customers/:id", cfg.Customers.GetCustomer)
	staff.Put("/customers/:id", cfg.Customers.UpdateCustomer)
	staff.Post("/packages",
		auth.RequireStaffRole(domain.StaffRoleAdmin),
		cfg.Customers.CreatePackage)

	staff.Get("/contracts", cfg.Contracts.ListContracts)
	staff.Post("/contracts",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.Contracts.CreateContract)
	staff.Get("/contracts/:id", cfg.Contracts.GetContract)
	staff.Get("/contracts/:id/payment-status", cfg.Payments.PaymentStatus)
	staff.Post("/contracts/:id/activate",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.Contracts.Activate)
	staff.Post("/contracts/:id/suspend",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.Contracts.Suspend)
	staff.Post("/contracts/:id/reactivate",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.Contracts.Reactivate)
	staff.Post("/contracts/:id/cancel",
		auth.RequireStaffRole(domain.StaffRoleAdmin),
		cfg.Contracts.Cancel)

	staff.Get("/payments", cfg.Payments.ListPayments)
	staff.Post("/payments", cfg.Payments.RecordPayment)
	staff.Get("/payments/:id", cfg.Payments.GetPayment)
	staff.Post("/payments/:id/approve",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.Payments.Approve)
	staff.Post("/payments/:id/reject",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.Payments.Reject)
	staff.Post("/payments/:id/cancel",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.Payments.Cancel)

	staff.Get("/work-orders", cfg.WorkOrders.ListWorkOrders)
	staff.Post("/work-orders",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.WorkOrders.CreateWorkOrder)
	staff.Get("/work-orders/:id", cfg.WorkOrders.GetWorkOrder)
	staff.Post("/work-orders/:id/assign",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.WorkOrders.Assign)
	staff.Post("/work-orders/:id/start", cfg.WorkOrders.Start)
	staff.Post("/work-orders/:id/complete", cfg.WorkOrders.Complete)
	staff.Post("/work-orders/:id/cancel",
		auth.RequireStaffRole(domain.StaffRoleAdmin, domain.StaffRoleOperator),
		cfg.WorkOrders.Cancel)

	staff.Get("/members", cfg.Staff.ListStaff)
	staff.Post("/members",
		auth.RequireStaffRole(domain.StaffRoleAdmin),
		cfg.Staff.CreateStaff)

	staff.Get("/audit-logs",
		auth.RequireStaffRole(domain.StaffRoleAdmin),
		cfg.Audit.ListAuditLogs)
}
