package di

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-web-service/cmd/api/infrastructure"
	"user-web-service/internal/adapter/db/postgres"
	ginhandler "user-web-service/internal/adapter/gin/handler"
	"user-web-service/internal/config"
	"user-web-service/internal/usecase/user"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	UserUC        user.Usecase
	UserHandler   *ginhandler.UserHandler
	SystemHandler *ginhandler.SystemHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := postgres.NewUserRepoPG(db, l)

	// Table auto-creation at startup.
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	userUC := user.New(repo, l)

	return &Container{
		Config:        cfg,
		Logger:        l,
		DB:            db,
		UserUC:        userUC,
		UserHandler:   ginhandler.NewUserHandler(userUC, l),
		SystemHandler: ginhandler.NewSystemHandler(db, l, cfg.Logger.ServiceName),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
