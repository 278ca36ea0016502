package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/people-management/internal"
	"github.com/frahmantamala/people-management/internal/auth"
	authPostgres "github.com/frahmantamala/people-management/internal/auth/postgres"
	"github.com/frahmantamala/people-management/internal/core/events"
	"github.com/frahmantamala/people-management/internal/department"
	departmentPostgres "github.com/frahmantamala/people-management/internal/department/postgres"
	"github.com/frahmantamala/people-management/internal/googleoauth"
	"github.com/frahmantamala/people-management/internal/role"
	rolePostgres "github.com/frahmantamala/people-management/internal/role/postgres"
	"github.com/frahmantamala/people-management/internal/transport"
	"github.com/frahmantamala/people-management/internal/transport/rest"
	"github.com/frahmantamala/people-management/internal/user"
	userPostgres "github.com/frahmantamala/people-management/internal/user/postgres"
	"github.com/frahmantamala/people-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	GormDB *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	setupRoutes(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) {
	cfg := deps.Config
	log := deps.Logger
	baseHandler := transport.NewBaseHandler(log)

	eventBus := events.NewEventBus(log)
	registerEventSubscribers(eventBus, log)

	oauthClient := googleoauth.NewClient(googleoauth.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURI:  cfg.Google.RedirectURI,
	}, log)

	tokenGenerator := auth.NewJWTTokenGenerator(cfg.Security.JWTSecret, cfg.Security.TokenDuration)
	authUserRepo := authPostgres.NewUserRepository(deps.GormDB, log)
	sessionRepo := authPostgres.NewSessionRepository(deps.GormDB)
	authService := auth.NewService(authUserRepo, sessionRepo, tokenGenerator, eventBus, cfg.Security.BCryptCost, cfg.Security.SessionDuration, log)
	authHandler := auth.NewHandler(authService, oauthClient)
	guard := auth.NewGuard(log)

	userRepo := userPostgres.NewUserRepository(deps.GormDB, log)
	userService := user.NewService(userRepo, eventBus, log)
	userHandler := user.NewHandler(baseHandler, userService)

	roleRepo := rolePostgres.NewRoleRepository(deps.GormDB)
	roleService := role.NewService(roleRepo, log)
	roleHandler := role.NewHandler(baseHandler, roleService)

	departmentRepo := departmentPostgres.NewDepartmentRepository(deps.GormDB)
	departmentService := department.NewService(departmentRepo, log)
	departmentHandler := department.NewHandler(baseHandler, departmentService)

	rest.RegisterAllRoutes(deps.Router, rest.RouterDeps{
		DB:                deps.DB.DB,
		AuthHandler:       authHandler,
		Guard:             guard,
		UserHandler:       userHandler,
		RoleHandler:       roleHandler,
		DepartmentHandler: departmentHandler,
		APIPrefix:         cfg.Server.APIPrefix,
		Logger:            log,
	})
}

// registerEventSubscribers attaches the audit-log subscribers. Notification
// delivery is out of scope; the log line is the sink.
func registerEventSubscribers(bus *events.EventBus, log *slog.Logger) {
	logEvent := func(ctx context.Context, event events.Event) error {
		log.Info("domain event",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"occurred_at", event.OccurredAt(),
			"payload", event.Payload())
		return nil
	}

	bus.Subscribe(events.EventTypeUserRegistered, logEvent)
	bus.Subscribe(events.EventTypeUserLoggedIn, logEvent)
	bus.Subscribe(events.EventTypeUserDeleted, logEvent)
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	router := chi.NewRouter()

	return &Dependencies{
		Config: config,
		Logger: logger.LoggerWrapper(),
		DB:     db,
		GormDB: gormDB,
		Router: router,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
