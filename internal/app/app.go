package app

import (
	"net/http"

	"baby-tracker-go/internal/assistant"
	"baby-tracker-go/internal/chat"
	"baby-tracker-go/internal/config"
	"baby-tracker-go/internal/db"
	"baby-tracker-go/internal/domain/child"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/internal/domain/user"
	"baby-tracker-go/internal/events"
	"baby-tracker-go/internal/mcpserver"
	"baby-tracker-go/internal/metrics"
	"baby-tracker-go/internal/repository/inmemory"
	childrepo "baby-tracker-go/internal/repository/postgres/child"
	householdrepo "baby-tracker-go/internal/repository/postgres/household"
	trackingrepo "baby-tracker-go/internal/repository/postgres/tracking"
	userrepo "baby-tracker-go/internal/repository/postgres/user"
	"baby-tracker-go/internal/transport/httpserver"
	"baby-tracker-go/internal/transport/httpserver/handler"
	authmw "baby-tracker-go/internal/transport/httpserver/middleware"
	"baby-tracker-go/pkg/logger"
	"github.com/mark3labs/mcp-go/server"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	db         *gorm.DB
	catalog    *assistant.Catalog
	httpServer *http.Server
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, log)
}

// NewWithConfig builds every service on top of one database connection. A
// SQLite database is migrated on open since it has no separate deploy step.
func NewWithConfig(cfg config.Config, log logger.Logger) (*App, error) {
	log.Info("app: initializing database", "driver", cfg.DB.Driver)
	dbConn, err := db.Open(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Driver == config.DriverSQLite {
		if err := db.Migrate(dbConn); err != nil {
			return nil, err
		}
	}
	sqlDB, err := dbConn.DB()
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	hub := events.NewHub(log, m, cfg.CORSAllowedOrigins)

	membershipCache := inmemory.NewInMemoryMembershipCache()
	householdRepo := householdrepo.NewPostgres(dbConn)
	trackingRepo := trackingrepo.NewPostgres(dbConn)

	userService := user.NewService(userrepo.NewPostgres(dbConn))
	childService := child.NewService(childrepo.NewPostgres(dbConn))
	householdService := household.NewServiceWithCache(householdRepo, membershipCache)
	access := household.NewAccessWithCache(householdRepo, childService, membershipCache, cfg.MembershipCacheTTL)
	trackingService := tracking.NewServiceWithPublisher(trackingRepo, hub)
	timelineService := timeline.NewService(trackingRepo, cfg.Timeline.DayStartHour, cfg.Timeline.Location())

	log.Info("app: initializing assistant")
	catalog := assistant.NewCatalog(assistant.Deps{
		Access:   access,
		Children: childService,
		Tracking: trackingService,
		Timeline: timelineService,
		Metrics:  m,
		Log:      log,
	})
	chatService := chat.NewService(chat.NewClient(cfg.AI), catalog, cfg.AI, cfg.Timeline, log)

	handlers := handler.New(handler.Services{
		Users:      userService,
		Households: householdService,
		Access:     access,
		Children:   childService,
		Tracking:   trackingService,
		Timeline:   timelineService,
		Chat:       chatService,
		Hub:        hub,
		DB:         sqlDB,
	}, log)

	var mcpHandler http.Handler
	if cfg.MCP.Enabled {
		mcpHandler = mcpserver.HTTPHandler(mcpserver.New(catalog), authmw.UserIDFromRequest)
	}

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, userService, mcpHandler, m, log)

	return &App{
		cfg:        cfg,
		log:        log,
		db:         dbConn,
		catalog:    catalog,
		httpServer: httpserver.New(cfg, router),
	}, nil
}

func (a *App) Config() config.Config {
	return a.cfg
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// MCPServer returns a protocol server over the same catalog the HTTP chat uses.
func (a *App) MCPServer() *server.MCPServer {
	return mcpserver.New(a.catalog)
}

func (a *App) Migrate() error {
	a.log.Info("db: migrating")
	return db.Migrate(a.db)
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
