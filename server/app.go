package server

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devicelab/config"
	"devicelab/internal/catalog"
	"devicelab/internal/db"
	"devicelab/internal/devicectl"
	"devicelab/internal/health"
	"devicelab/internal/logs"
	"devicelab/internal/middleware"
	"devicelab/internal/models"
	"devicelab/internal/session"
	"devicelab/internal/upload"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type App struct {
	cfg        *config.Config
	Router     *mux.Router
	httpServer *http.Server

	db     *gorm.DB
	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	// 1) Логи
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	// 2) БД
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	a.db = d

	if err := a.db.AutoMigrate(
		// reference data
		&models.Device{},
		&models.Browser{},
		&models.BrowserDevice{},
		&models.User{},

		// sessions and owned records
		&models.TestSession{},
		&models.Screenshot{},
		&models.TestLog{},
		&models.NetworkRequest{},
	); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	if err := db.Seed(a.db); err != nil {
		logs.Logger.Warnf("seed: %v", err)
	}

	// 3) Роутер + middleware
	a.Router = mux.NewRouter()
	a.Router.Use(middleware.RequestID)
	a.Router.Use(middleware.Recoverer)
	a.Router.Use(middleware.LoggerMW)

	// 4) Health маршруты
	health.RegisterRoutesWithDB(a.Router, a.db)

	// 5) Доменные ручки
	catRepo := catalog.NewRepo(a.db)
	catalog.NewHTTP(catRepo).RegisterRoutes(a.Router)

	sessRepo := session.NewRepo(a.db)
	sessSvc := session.NewService(sessRepo)
	session.NewHTTP(sessSvc).RegisterRoutes(a.Router)

	sim := devicectl.NewSimulator(a.cfg.Simulator.InstallDelay)
	devicectl.NewHTTP(sessRepo, sim).RegisterRoutes(a.Router)

	upload.NewHandler(catRepo, sessSvc, a.cfg.Storage.UploadsDir, a.cfg.Storage.MaxUploadBytes).
		RegisterRoutes(a.Router)

	// 6) Статика загруженных артефактов
	a.RegisterUploads(upload.PublicPrefix)

	a.Router.Walk(func(rt *mux.Route, r *mux.Router, ancestors []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return ErrNotInitialized
	}
	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() { <-sigs; a.cancel() }()

	a.httpServer = &http.Server{
		Addr:         bind,
		Handler:      a.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.httpServer.Shutdown(ctx)
	return nil
}

var ErrNotInitialized = &initError{"server not initialized (call Initialize(cfg) first)"}

type initError struct{ s string }

func (e *initError) Error() string { return e.s }
