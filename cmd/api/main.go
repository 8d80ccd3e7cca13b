package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Clientes-api/internal/application/auth"
	"github.com/jhoicas/Clientes-api/internal/application/crm"
	"github.com/jhoicas/Clientes-api/internal/application/identity"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/filestore"
	infrapdf "github.com/jhoicas/Clientes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Clientes-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Clientes-api/internal/interfaces/http"
	"github.com/jhoicas/Clientes-api/pkg/config"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// repos agrupa los puertos de persistencia más el locker, para que el
// cableado sea idéntico con ambos backends.
type repos struct {
	tenants     repository.TenantRepository
	users       repository.UserRepository
	customers   repository.CustomerRepository
	forms       repository.FormRepository
	submissions repository.SubmissionRepository
	invoices    repository.InvoiceRepository
	locker      identity.TenantLocker
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	r, err := buildRepos(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar storage")
	}
	defer r.close()

	// Núcleo de identidad
	resolver := identity.NewResolver(r.customers, r.locker, log)
	ingestUC := identity.NewIngestUseCase(r.forms, r.submissions, resolver, log)
	merger := identity.NewMergeCoordinator(r.customers, r.submissions, r.invoices, r.locker, log)
	scanner := identity.NewDuplicateScanner(r.customers, r.tenants, log)

	// Casos de uso CRM
	tenantUC := crm.NewTenantUseCase(r.tenants)
	formUC := crm.NewFormUseCase(r.forms)
	customerUC := crm.NewCustomerUseCase(r.customers, r.submissions, r.invoices)
	invoiceUC := crm.NewInvoiceUseCase(r.invoices, r.customers)
	pdfUC := crm.NewPDFUseCase(r.customers, r.submissions, r.invoices, r.tenants, infrapdf.NewMarotoPDFGenerator())

	authUC := auth.NewAuthUseCase(r.users, r.tenants, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Clientes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		TenantUC:   tenantUC,
		FormUC:     formUC,
		CustomerUC: customerUC,
		InvoiceUC:  invoiceUC,
		PDFUC:      pdfUC,
		Ingest:     ingestUC,
		Merger:     merger,
		Scanner:    scanner,
		JWTSecret:  cfg.JWT.Secret,
	})

	// Job nocturno: escaneo de candidatos a merge por tenant
	cronScheduler := gocron.NewScheduler(time.UTC)
	if cfg.Scan.Enabled {
		if _, err := cronScheduler.Cron(cfg.Scan.Cron).Do(func() { scanner.ScanAll(ctx) }); err != nil {
			log.Error().Err(err).Str("cron", cfg.Scan.Cron).Msg("programar dupescan")
		} else {
			log.Info().Str("cron", cfg.Scan.Cron).Msg("dupescan programado")
		}
		cronScheduler.StartAsync()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cronScheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildRepos elige el backend físico una sola vez al arrancar.
func buildRepos(ctx context.Context, cfg *config.Config) (*repos, error) {
	if cfg.Storage.Backend == "file" {
		store, err := filestore.New(cfg.Storage.FilestoreDir)
		if err != nil {
			return nil, err
		}
		return &repos{
			tenants:     filestore.NewTenantRepository(store),
			users:       filestore.NewUserRepository(store),
			customers:   filestore.NewCustomerRepository(store),
			forms:       filestore.NewFormRepository(store),
			submissions: filestore.NewSubmissionRepository(store),
			invoices:    filestore.NewInvoiceRepository(store),
			locker:      filestore.NewTenantLocker(),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &repos{
		tenants:     postgres.NewTenantRepository(pool),
		users:       postgres.NewUserRepository(pool),
		customers:   postgres.NewCustomerRepository(pool),
		forms:       postgres.NewFormRepository(pool),
		submissions: postgres.NewSubmissionRepository(pool),
		invoices:    postgres.NewInvoiceRepository(pool),
		locker:      postgres.NewAdvisoryLocker(pool),
		close:       pool.Close,
	}, nil
}
