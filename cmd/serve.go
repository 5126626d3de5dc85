package cmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/spendtrack/spendtrack-services/api/handlers"
	"github.com/spendtrack/spendtrack-services/api/middleware"
	"github.com/spendtrack/spendtrack-services/api/services"
	"github.com/spendtrack/spendtrack-services/internal/authn"
	"github.com/spendtrack/spendtrack-services/internal/awsclient"
	"github.com/spendtrack/spendtrack-services/internal/events"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and set up logging
		commonSetUp()

		// The notifier must exist before the database layer that publishes
		// through it
		notifier := initializeNotifier()
		initializeDatabase(notifier)
		defer expenseDB.Close()

		if appCfg.Auth.Secret == "" {
			log.Fatal().Msg("auth.secret must be configured")
		}
		tokens := authn.NewTokenService(appCfg.Auth.Secret,
			time.Duration(appCfg.Auth.TokenTTLDays)*24*time.Hour)

		service := &services.Service{
			Config: appCfg,
			DB:     expenseDB,
			Tokens: tokens,
			Email:  initializeEmailClient(),
		}

		// Create routes
		r := mux.NewRouter()

		basePath := appCfg.BasePath
		if basePath == "" {
			basePath = "/"
		}
		api := r.PathPrefix(basePath).Subrouter()
		api.Use(middleware.WithLogger)

		// Public routes
		api.HandleFunc("/user", handlers.RegisterUser(service)).Methods(http.MethodPost)
		api.HandleFunc("/login", handlers.Login(service)).Methods(http.MethodPost)

		// Protected routes require a valid bearer token
		protected := api.PathPrefix("/").Subrouter()
		protected.Use(middleware.JWTMiddleware(tokens))

		// Group routes
		protected.HandleFunc("/group", handlers.GetGroups(service)).Methods(http.MethodGet)
		protected.HandleFunc("/group", handlers.CreateGroup(service)).Methods(http.MethodPost)
		protected.HandleFunc("/group/join", handlers.JoinGroup(service)).Methods(http.MethodPost)
		protected.HandleFunc("/group/leave", handlers.LeaveGroup(service)).Methods(http.MethodPost)
		protected.HandleFunc("/group/{group-id}", handlers.GetGroup(service)).Methods(http.MethodGet)

		// Spending routes
		protected.HandleFunc("/spending", handlers.CreateSpending(service)).Methods(http.MethodPost)
		protected.HandleFunc("/spending/{user-id}", handlers.GetSpendings(service)).Methods(http.MethodGet)
		protected.HandleFunc("/spending/{spending-id}", handlers.UpdateSpending(service)).Methods(http.MethodPut)
		protected.HandleFunc("/spending/{spending-id}", handlers.DeleteSpending(service)).Methods(http.MethodDelete)

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))

		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", host, port),
			r); err != nil {

			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}

// initializeNotifier creates the Pulsar event publisher, or a no-op notifier
// when no messaging system is configured.
func initializeNotifier() events.Notifier {
	if appCfg.Pulsar.URL == "" {
		return events.NoopNotifier{}
	}

	publisher, err := events.NewEventPublisher(appCfg.Pulsar.URL, appCfg.Pulsar.Topic)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize event publisher")
	}
	return publisher
}

// initializeEmailClient creates the SES client when welcome emails are enabled.
func initializeEmailClient() services.EmailClient {
	if appCfg == nil || !appCfg.Email.Enabled {
		return nil
	}

	awsCfg, err := awsclient.LoadAWSConfig(appCfg.Email.Region)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize email client")
	}
	return awsclient.NewSESClient(awsCfg)
}
