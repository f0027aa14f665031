package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopflow/internal/application/service"
	"github.com/sangkips/shopflow/internal/config"
	domainRepo "github.com/sangkips/shopflow/internal/domain/repository"
	"github.com/sangkips/shopflow/internal/infrastructure/database"
	"github.com/sangkips/shopflow/internal/infrastructure/repository"
	"github.com/sangkips/shopflow/internal/presentation/http/handler"
	"github.com/sangkips/shopflow/internal/presentation/http/middleware"
	"github.com/sangkips/shopflow/internal/presentation/http/routes"
	"github.com/sangkips/shopflow/pkg/email"
	"github.com/sangkips/shopflow/pkg/printer"
	"github.com/sangkips/shopflow/pkg/utils"
	"github.com/sirupsen/logrus"
)

// Services groups the application services wired over one store
type Services struct {
	Auth      *service.AuthService
	Product   *service.ProductService
	Cart      *service.CartService
	Checkout  *service.CheckoutService
	Customer  *service.CustomerService
	Invoice   *service.InvoiceService
	Settings  *service.SettingsService
	Message   *service.MessageService
	Printer   *service.PrinterService
	Backup    *service.BackupService
	Dashboard *service.DashboardService
	Report    *service.ReportService
}

// App is a fully wired ShopFlow instance
type App struct {
	Store    domainRepo.KeyValueStore
	Services *Services
	Router   *gin.Engine

	printer     printer.Printer
	rateLimiter *middleware.RateLimiter
	log         *logrus.Logger
}

// OpenStore connects the key/value backend selected by STORE_DRIVER
func OpenStore(cfg *config.Config, log *logrus.Logger) (domainRepo.KeyValueStore, error) {
	switch cfg.Store.Driver {
	case "memory":
		log.Warn("Using in-memory store, data is lost on exit")
		return repository.NewMemoryStore(), nil
	case "sqlite", "postgres":
		db, err := database.Open(cfg.Store.Driver, cfg.StoreDSN(), log)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		return repository.NewGormStore(db), nil
	case "redis":
		client, err := database.NewRedisClient(&cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		return repository.NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q (supported: memory, sqlite, postgres, redis)", cfg.Store.Driver)
	}
}

// New opens the configured store and wires the application over it
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	store, err := OpenStore(cfg, log)
	if err != nil {
		return nil, err
	}
	return NewWithStore(cfg, store, log), nil
}

// NewWithStore wires repositories, services, handlers and routes over store
func NewWithStore(cfg *config.Config, store domainRepo.KeyValueStore, log *logrus.Logger) *App {
	// Repositories
	productRepo := repository.NewProductRepository(store)
	customerRepo := repository.NewCustomerRepository(store)
	invoiceRepo := repository.NewInvoiceRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)
	sessionRepo := repository.NewSessionRepository(store)
	idempotencyRepo := repository.NewIdempotencyRepository(store)

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.App.Name)

	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	printerCfg := printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
		Width:   cfg.Printer.Width,
	}
	thermalPrinter, err := printer.NewPrinterFromConfig(printerCfg)
	if err != nil {
		log.WithError(err).Warn("Failed to initialize printer, printing disabled")
		thermalPrinter = printer.NewNullPrinter()
	}

	// Services
	svc := &Services{}
	svc.Auth = service.NewAuthService(sessionRepo, jwtManager, log)
	svc.Product = service.NewProductService(productRepo)
	svc.Cart = service.NewCartService(svc.Product, customerRepo, log)
	svc.Checkout = service.NewCheckoutService(svc.Cart, invoiceRepo, log)
	svc.Customer = service.NewCustomerService(customerRepo, log)
	svc.Invoice = service.NewInvoiceService(invoiceRepo)
	svc.Settings = service.NewSettingsService(settingsRepo, log)
	svc.Message = service.NewMessageService(svc.Invoice, svc.Customer, svc.Settings, emailService, log)
	svc.Printer = service.NewPrinterService(thermalPrinter, svc.Invoice, svc.Settings, printerCfg, log)
	svc.Backup = service.NewBackupService(productRepo, customerRepo, invoiceRepo, settingsRepo, log)
	svc.Dashboard = service.NewDashboardService(productRepo, invoiceRepo, cfg.Shop.LowStockThreshold)
	svc.Report = service.NewReportService(invoiceRepo)

	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(svc.Auth),
		Product:   handler.NewProductHandler(svc.Product),
		Cart:      handler.NewCartHandler(svc.Cart, svc.Checkout),
		Customer:  handler.NewCustomerHandler(svc.Customer, svc.Cart),
		Invoice:   handler.NewInvoiceHandler(svc.Invoice, svc.Message),
		Dashboard: handler.NewDashboardHandler(svc.Dashboard, svc.Report),
		Settings:  handler.NewSettingsHandler(svc.Settings, svc.Backup),
		Printer:   handler.NewPrinterHandler(svc.Printer),
	}

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFrom(
		cfg.RateLimit.Requests,
		cfg.RateLimit.Duration,
	))

	router := routes.Setup(handlers, &routes.Deps{
		AuthService:     svc.Auth,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
		Log:             log,
	})

	return &App{
		Store:       store,
		Services:    svc,
		Router:      router,
		printer:     thermalPrinter,
		rateLimiter: rateLimiter,
		log:         log,
	}
}

// Close stops the rate limiter and releases the printer and the store
func (a *App) Close() error {
	a.rateLimiter.Stop()
	if err := a.printer.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close printer")
	}
	return a.Store.Close()
}
