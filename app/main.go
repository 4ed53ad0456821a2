package main

import (
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/mailservice"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	db          *sql.DB
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
	broker      *common.MessageBroker
	limiters    *common.Cache
}

func main() {
	// Initialize the logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the database
	db, err := common.NewDB(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	m, err := common.Migrate(cfg.MigrationsPath, common.DSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName))
	if err != nil {
		logger.Error("failed to migrate the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	m.Close()

	// Initialize the message broker
	broker, err := common.NewMessageBroker(common.AMQPURI(cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort))
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	// Setup the exchange, queue, and binding key
	err = common.SetupBlogExchange(broker)
	if err != nil {
		logger.Error("failed to setup the blog exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	signer, err := userservice.NewTokenSigner(cfg.Secret, cfg.TokenTTL)
	if err != nil {
		logger.Error("failed to create the token signer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize the services
	app := &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		userService: userservice.NewUserService(db, signer),
		blogService: blogservice.NewBlogService(db, broker),
		broker:      broker,
		limiters:    common.NewCache(3*time.Minute, 5*time.Minute),
	}

	if cfg.MailRecipient != "" {
		app.mailService = mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailRecipient, cfg.MailPort, logger)

		// Initialize the consumer
		err = app.mailService.NotifyNewBlogs()
		if err != nil {
			logger.Error("failed to start the mail consumer", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Start the HTTP server
	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
