package app

import (
	"fmt"
	"time"

	"github.com/hoaxify/hoaxify/internal/config"
	"github.com/hoaxify/hoaxify/internal/db"
	"github.com/hoaxify/hoaxify/internal/repository"
	"github.com/hoaxify/hoaxify/internal/scheduler"
	"github.com/hoaxify/hoaxify/internal/service"
	"github.com/hoaxify/hoaxify/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg          *config.Config
	DB           *sqlx.DB
	Storage      *storage.LocalStorage
	AuthService  *service.AuthService
	UserService  *service.UserService
	HoaxService  *service.HoaxService
	FileService  *service.FileService
	EmailService *service.EmailService
	Scheduler    *scheduler.Service
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	tokenRepository := repository.NewTokenRepository(database)
	hoaxRepository := repository.NewHoaxRepository(database)
	attachmentRepository := repository.NewAttachmentRepository(database)

	// Storage
	fileStorage, err := storage.NewLocal(cfg.UploadDir, storage.ProfileArea, storage.AttachmentArea)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.SupportEmail,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	fileService := service.NewFileService(attachmentRepository, fileStorage, cfg.AttachmentRetention)
	authService := service.NewAuthService(userRepository, tokenRepository, emailService, cfg.TokenExpiry)
	userService := service.NewUserService(
		userRepository,
		hoaxRepository,
		attachmentRepository,
		tokenRepository,
		fileService,
		emailService,
	)
	hoaxService := service.NewHoaxService(hoaxRepository, userRepository, attachmentRepository, fileService)

	// Background sweeps
	sched := scheduler.New()
	err = sched.Register(scheduler.Task{
		Name:        "token_sweep",
		Description: "delete session tokens idle past the expiry window",
		Interval:    cfg.TokenSweepInterval,
		Handler: func() error {
			_, err := authService.SweepExpired(time.Now())
			return err
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register token sweep: %v", err)
	}
	err = sched.Register(scheduler.Task{
		Name:        "attachment_reaper",
		Description: "delete attachments never bound to a hoax within the retention window",
		Interval:    cfg.AttachmentSweepInterval,
		Handler: func() error {
			_, err := fileService.ReapOrphans(time.Now())
			return err
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register attachment reaper: %v", err)
	}

	return &App{
		Cfg:          cfg,
		DB:           database,
		Storage:      fileStorage,
		AuthService:  authService,
		UserService:  userService,
		HoaxService:  hoaxService,
		FileService:  fileService,
		EmailService: emailService,
		Scheduler:    sched,
	}, nil
}

func (a *App) Close() error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
