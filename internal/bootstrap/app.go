package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appsvc "showcase/internal/app"
	"showcase/internal/config"
	"showcase/internal/model"
	cataloguemodel "showcase/internal/model/catalogue"
	gallerymodel "showcase/internal/model/gallery"
	"showcase/internal/pkg/logger"
	"showcase/internal/platform/database"
	rabbitmqClient "showcase/internal/platform/rabbitmq"
	redisClient "showcase/internal/platform/redis"
	"showcase/internal/repository"
	cataloguerepo "showcase/internal/repository/catalogue"
	galleryrepo "showcase/internal/repository/gallery"
	"showcase/internal/session"
	"showcase/internal/worker"
)

type App struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	Sessions       *session.Manager
	Activity       *appsvc.ActivityRecorder
	ActivityWorker *worker.ActivityWorker

	StartedAt time.Time

	publisher *rabbitmqClient.ActivityPublisher
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Logger:    log,
		StartedAt: time.Now(),
	}

	a.DB, err = OpenDatabase(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	var store session.Store = session.NewMemoryStore()
	if cfg.Redis.Enabled {
		a.Redis, err = redisClient.New(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		store = session.NewRedisStore(a.Redis, cfg.App.Name)
	} else {
		log.Info("redis disabled, sessions are kept in memory")
	}
	a.Sessions = session.NewManager(store, cfg.Auth.SessionSecret, time.Duration(cfg.Auth.SessionTTLMinute)*time.Minute)

	var publisher appsvc.ActivityPublisher = appsvc.NopActivityPublisher{}
	if cfg.RabbitMQ.Enabled {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ActivityQueue)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.publisher = rabbitmqClient.NewActivityPublisher(a.MQConn, cfg.RabbitMQ.ActivityQueue)
		publisher = a.publisher

		a.ActivityWorker = worker.NewActivityWorker(a.MQConn, repository.NewActivityRepository(a.DB), cfg.RabbitMQ.ActivityQueue, log)
		if err := a.ActivityWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start activity worker failed: %w", err)
		}
	}
	a.Activity = appsvc.NewActivityRecorder(publisher, log)

	if err := a.seedAdmin(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// OpenDatabase connects to the variant's database and migrates its tables.
func OpenDatabase(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := database.Open(ctx, cfg.Database.Driver, cfg.DatabaseDSN(), logger.Gorm(log))
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, Models(cfg.App.Variant)...); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return db, nil
}

// Models lists the tables of a variant, activity log included.
func Models(variant string) []interface{} {
	var models []interface{}
	if variant == config.VariantCatalogue {
		models = cataloguemodel.Models()
	} else {
		models = gallerymodel.Models()
	}
	return append(models, &model.ActivityEvent{})
}

// Accounts returns the account store of the configured variant.
func (a *App) Accounts() appsvc.AccountStore {
	if a.Config.App.Variant == config.VariantCatalogue {
		return cataloguerepo.NewAccountStore(a.DB)
	}
	return galleryrepo.NewAccountStore(a.DB)
}

func (a *App) seedAdmin(ctx context.Context) error {
	admin := a.Config.Admin
	if admin.Username == "" || admin.Password == "" {
		return nil
	}
	email := admin.Email
	if email == "" {
		email = admin.Username + "@localhost"
	}

	auth := appsvc.NewAuthService(a.Accounts(), a.Sessions, a.Activity)
	created, err := auth.EnsureAccount(ctx, admin.Username, email, admin.Password, model.RoleAdmin)
	if err != nil {
		return err
	}
	if created {
		a.Logger.Info("seeded admin account", zap.String("username", admin.Username))
	}
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.ActivityWorker != nil {
		a.ActivityWorker.Close()
	}
	if a.publisher != nil {
		_ = a.publisher.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		if err := database.Close(a.DB); err != nil {
			closeErr = err
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return closeErr
}
