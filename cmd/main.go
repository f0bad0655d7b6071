package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"prodtrack/internal/adapters"
	"prodtrack/internal/bootstrap"
	authDelivery "prodtrack/internal/delivery/auth"
	challengeDelivery "prodtrack/internal/delivery/challenge"
	chessDelivery "prodtrack/internal/delivery/chess"
	friendsDelivery "prodtrack/internal/delivery/friends"
	h2hDelivery "prodtrack/internal/delivery/h2h"
	insightDelivery "prodtrack/internal/delivery/insight"
	journalDelivery "prodtrack/internal/delivery/journal"
	notifyDelivery "prodtrack/internal/delivery/notify"
	statsDelivery "prodtrack/internal/delivery/stats"
	"prodtrack/internal/domain/user"
	"prodtrack/internal/metrics"
	ownMiddleware "prodtrack/internal/middleware"
	"prodtrack/internal/notify"
	"prodtrack/internal/repository"
	authUC "prodtrack/internal/usecase/auth"
	challengeUC "prodtrack/internal/usecase/challenge"
	friendsUC "prodtrack/internal/usecase/friends"
	h2hUC "prodtrack/internal/usecase/h2h"
	insightUC "prodtrack/internal/usecase/insight"
	journalUC "prodtrack/internal/usecase/journal"
	statsUC "prodtrack/internal/usecase/stats"
)

const shutdownTimeout = 5 * time.Second

type userStore interface {
	View(ctx context.Context, fn func(users user.Users) error) error
	Update(ctx context.Context, fn func(users user.Users) error) error
}

type mainDeliveryHandler struct {
	auth      *authDelivery.AuthHandler
	stats     *statsDelivery.StatsHandler
	journal   *journalDelivery.JournalHandler
	challenge *challengeDelivery.ChallengeHandler
	friends   *friendsDelivery.FriendsHandler
	h2h       *h2hDelivery.H2HHandler
	insight   *insightDelivery.InsightHandler
	notify    *notifyDelivery.NotifyHandler
	metrics   *metrics.Metrics
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	defer logger.Sync()

	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, *cfg)
	defer databaseAdapters.Close(context.Background())

	store, err := initUserStore(*cfg, logger, databaseAdapters)
	if err != nil {
		logger.Error("Failed to open user store", zap.Error(err))
		return
	}

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, store, databaseAdapters)
	handlers.Router(r, cfg.IsLocalCors)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(h.metrics.Middleware)

	r.Post("/register", h.auth.Register)
	r.Post("/login", h.auth.Login)
	r.Delete("/logout", h.auth.Logout)

	r.Get("/dashboard", h.stats.Dashboard)
	r.Get("/report.pdf", h.stats.Report)

	r.Post("/tasks", h.journal.AddTask)
	r.Post("/logs", h.journal.AddLog)
	r.Get("/activities", h.journal.Activities)
	r.Post("/activities", h.journal.AddActivity)
	r.Post("/goals", h.journal.SetGoal)
	r.Post("/notes", h.journal.AddNote)
	r.Delete("/notes/{id}", h.journal.DeleteNote)
	r.Post("/expenses", h.journal.AddExpense)
	r.Post("/profile", h.journal.UpdateProfile)

	r.Get("/challenges", h.challenge.Challenges)

	r.Route("/friends", func(r chi.Router) {
		r.Get("/", h.friends.List)
		r.Post("/request", h.friends.Request)
		r.Post("/accept", h.friends.Accept)
		r.Post("/reject", h.friends.Reject)
		r.Post("/remove", h.friends.Remove)
	})

	r.Route("/h2h", func(r chi.Router) {
		r.Get("/", h.h2h.List)
		r.Post("/", h.h2h.Create)
		r.Get("/catalog", h.h2h.Catalog)
		r.Post("/respond", h.h2h.Respond)
	})

	r.Get("/insight", h.insight.Tip)
	r.Post("/ai", h.insight.Ask)

	r.Get("/ws", h.notify.Connect)
	r.Get("/chess", chessDelivery.Handle)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
}

// initDatabaseAdapters connects only what the configuration asks for. Either
// adapter may be nil.
func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) *dataBaseAdapters {
	adapterSet := &dataBaseAdapters{}

	if cfg.StoreBackend == bootstrap.StoreBackendMongo {
		mongoAdapter := adapters.NewAdapterMongo(&cfg)
		if err := mongoAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize MongoDB", zap.Error(err))
		}
		adapterSet.mongoAdapter = mongoAdapter
	}

	if cfg.RedisUrl != "" {
		redisAdapter := adapters.NewAdapterRedis(&cfg)
		if err := redisAdapter.Init(ctx); err != nil {
			log.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		adapterSet.redisAdapter = redisAdapter
	}

	log.Info("Database adapters initialized")
	return adapterSet
}

func (d *dataBaseAdapters) Close(ctx context.Context) {
	if d.mongoAdapter != nil {
		_ = d.mongoAdapter.Close(ctx)
	}
	if d.redisAdapter != nil {
		_ = d.redisAdapter.Close(ctx)
	}
}

func initUserStore(cfg bootstrap.Config, log *zap.SugaredLogger, databaseAdapters *dataBaseAdapters) (userStore, error) {
	if databaseAdapters.mongoAdapter != nil {
		return repository.NewMongoUserStore(databaseAdapters.mongoAdapter, log), nil
	}
	store, err := repository.NewFileUserStore(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	return store.WithLogger(log), nil
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	store userStore,
	databaseAdapters *dataBaseAdapters,
) *mainDeliveryHandler {
	now := time.Now

	var sessions authUC.SessionStorage = repository.NewSessionMapStorage()
	if databaseAdapters.redisAdapter != nil {
		sessions = repository.NewSessionRedisStorage(databaseAdapters.redisAdapter.GetClient(), cfg.SessionTTL(), log)
	}

	appMetrics := metrics.New()
	hub := notify.NewHub(log, cfg.IsLocalCors)
	llm := repository.NewLlmRepository(adapters.NewLlmAdapter(cfg.MistralApiKey, cfg.MistralModel))

	authHandler := authDelivery.NewAuthHandler(authUC.NewUserUsecaseHandler(store, sessions, now), log, cfg.SessionTTL(), !cfg.IsLocalCors)

	return &mainDeliveryHandler{
		auth:      authHandler,
		stats:     statsDelivery.NewStatsHandler(log, statsUC.NewStatsUseCase(store, now), authHandler, now),
		journal:   journalDelivery.NewJournalHandler(log, journalUC.NewJournalUseCase(store, now), authHandler),
		challenge: challengeDelivery.NewChallengeHandler(log, challengeUC.NewChallengeUseCase(store, now), authHandler),
		friends:   friendsDelivery.NewFriendsHandler(log, friendsUC.NewFriendsUseCase(store, hub, now), authHandler),
		h2h:       h2hDelivery.NewH2HHandler(log, h2hUC.NewH2HUseCase(store, hub, now), authHandler),
		insight:   insightDelivery.NewInsightHandler(log, insightUC.NewInsightUseCase(store, llm, log, appMetrics, now), authHandler),
		notify:    notifyDelivery.NewNotifyHandler(hub, authHandler),
		metrics:   appMetrics,
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
