package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/redesmx/isp-backoffice/internal/api/http"
	"github.com/redesmx/isp-backoffice/internal/api/http/handlers"
	"github.com/redesmx/isp-backoffice/internal/auth"
	"github.com/redesmx/isp-backoffice/internal/config"
	"github.com/redesmx/isp-backoffice/internal/events"
	"github.com/redesmx/isp-backoffice/internal/observability"
	"github.com/redesmx/isp-backoffice/internal/persistence"
	"github.com/redesmx/isp-backoffice/internal/ratelimit"
	"github.com/redesmx/isp-backoffice/internal/repository"
	"github.com/redesmx/isp-backoffice/internal/service"
	"github.com/redesmx/isp-backoffice/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var redis *persistence.Redis
	if cfg.RateLimit.Backend == "redis" {
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
	}

	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	packageRepo := repository.NewPackageRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	contractRepo := repository.NewContractRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	orderRepo := repository.NewWorkOrderRepository(pool)
	auditRepo := repository.NewAuditLogRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	coverageService := service.NewCoverageService(cfg.Coverage.Zones)
	authService := service.NewAuthService(*cfg, staffRepo)
	customerService := service.NewCustomerService(service.CustomerDependencies{
		CustomerRepo: customerRepo,
		PackageRepo:  packageRepo,
		Coverage:     coverageService,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		StaffRepo:  staffRepo,
		Coverage:   coverageService,
		Dispatcher: dispatcher,
	})
	contractService := service.NewContractService(service.ContractDependencies{
		ContractRepo: contractRepo,
		CustomerRepo: customerRepo,
		PackageRepo:  packageRepo,
		OrderRepo:    orderRepo,
		Dispatcher:   dispatcher,
	})
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		PaymentRepo:  paymentRepo,
		ContractRepo: contractRepo,
		Dispatcher:   dispatcher,
	})
	orderService := service.NewWorkOrderService(service.WorkOrderDependencies{
		OrderRepo:    orderRepo,
		ContractRepo: contractRepo,
		StaffRepo:    staffRepo,
		Dispatcher:   dispatcher,
	})
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	var limiterStore ratelimit.Store
	if redis != nil {
		limiterStore = ratelimit.NewRedisStore(redis.Client, cfg.RateLimit.KeyPrefix)
		logger.Info("rate limiter using redis backend")
	} else {
		limiterStore = ratelimit.NewMemoryStore()
	}
	limiter := ratelimit.NewLimiter(limiterStore)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Public:         handlers.NewPublicHandler(ticketService, coverageService, customerService),
		Staff:          handlers.NewStaffHandler(authService),
		StaffTickets:   handlers.NewStaffTicketsHandler(ticketService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Contracts:      handlers.NewContractsHandler(contractService),
		Payments:       handlers.NewPaymentsHandler(paymentService),
		WorkOrders:     handlers.NewWorkOrdersHandler(orderService),
		Audit:          handlers.NewAuditHandler(auditRepo),
		AuthMiddleware: authMiddleware,
		Limiter:        limiter,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
