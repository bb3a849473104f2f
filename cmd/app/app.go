package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventfesta/eventfesta-api/internal/api"
	"github.com/eventfesta/eventfesta-api/internal/config"
	"github.com/eventfesta/eventfesta-api/internal/db"
	"github.com/eventfesta/eventfesta-api/internal/imagestore"
	"github.com/eventfesta/eventfesta-api/internal/logger"
	"github.com/eventfesta/eventfesta-api/internal/notifier"
	"github.com/eventfesta/eventfesta-api/internal/repository"
	"github.com/eventfesta/eventfesta-api/internal/repository/dao"
	"github.com/eventfesta/eventfesta-api/internal/scheduler"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	mailer := notifier.NewMailer(conf.SMTP)

	images, err := imagestore.NewLocalStore(conf.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize image store -> %w", err)
	}

	reminders := scheduler.NewReminderJob(
		repository.NewEventRepository(dao.NewEventDAO(postgresDB)),
		repository.NewRegistrationRepository(dao.NewRegistrationDAO(postgresDB)),
		mailer,
	)
	if err = reminders.Start(); err != nil {
		return fmt.Errorf("failed to start reminder job -> %w", err)
	}
	defer reminders.Stop()

	s := api.NewServer(conf, postgresDB, mailer, images)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
