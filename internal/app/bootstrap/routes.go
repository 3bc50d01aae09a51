// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	accountfeature "github.com/dalemusser/gardenlog/internal/app/features/account"
	advisorfeature "github.com/dalemusser/gardenlog/internal/app/features/advisor"
	chatfeature "github.com/dalemusser/gardenlog/internal/app/features/chat"
	harvestsfeature "github.com/dalemusser/gardenlog/internal/app/features/harvests"
	healthfeature "github.com/dalemusser/gardenlog/internal/app/features/health"
	homefeature "github.com/dalemusser/gardenlog/internal/app/features/home"
	loginfeature "github.com/dalemusser/gardenlog/internal/app/features/login"
	logoutfeature "github.com/dalemusser/gardenlog/internal/app/features/logout"
	plansfeature "github.com/dalemusser/gardenlog/internal/app/features/plans"
	plantsfeature "github.com/dalemusser/gardenlog/internal/app/features/plants"
	weatherfeature "github.com/dalemusser/gardenlog/internal/app/features/weather"
	"github.com/dalemusser/gardenlog/internal/app/store/accounts"
	"github.com/dalemusser/gardenlog/internal/app/store/chat"
	"github.com/dalemusser/gardenlog/internal/app/store/garden"
	"github.com/dalemusser/gardenlog/internal/app/store/harvests"
	"github.com/dalemusser/gardenlog/internal/app/store/plans"
	"github.com/dalemusser/gardenlog/internal/app/store/plants"
	"github.com/dalemusser/gardenlog/internal/app/system/advisor"
	"github.com/dalemusser/gardenlog/internal/app/system/auth"
	"github.com/dalemusser/gardenlog/internal/app/system/identity"
	"github.com/dalemusser/gardenlog/internal/app/system/weather"
)

// BuildHandler constructs the root HTTP handler for the app.
//
// WAFFLE calls this after configuration, the backend decision, and schema
// setup have completed. The stores are chosen by deps.Backend.Mode here, and
// everything downstream of the garden service is identical in both modes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	svc := buildGardenService(appCfg, deps, logger)

	// nil client when no API key is configured; the advisor feature answers
	// 503 for every endpoint in that case.
	advisorClient, err := advisor.NewClient(context.Background(), appCfg.GeminiAPIKey, appCfg.GeminiModel, logger)
	if err != nil {
		if !errors.Is(err, advisor.ErrNotConfigured) {
			logger.Error("advisor client init failed", zap.Error(err))
			return nil, err
		}
		logger.Warn("no Gemini API key configured; advisor endpoints disabled")
	}

	weatherClient := weather.New(appCfg.WeatherLat, appCfg.WeatherLon, logger)

	r := chi.NewRouter()

	// Loads SessionUser into context when a valid session cookie is present.
	r.Use(sessionMgr.LoadSessionUser)

	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Backend, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	homeHandler := homefeature.NewHandler(deps.Backend, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	loginHandler := loginfeature.NewHandler(svc, sessionMgr, appCfg.SessionKey, appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/auth/google", loginfeature.GoogleRoutes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(svc, sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler))

	plantsHandler := plantsfeature.NewHandler(svc, logger)
	r.Mount("/api/plants", plantsfeature.Routes(plantsHandler, sessionMgr))

	harvestsHandler := harvestsfeature.NewHandler(svc, logger)
	r.Mount("/api/harvests", harvestsfeature.Routes(harvestsHandler, sessionMgr))

	plansHandler := plansfeature.NewHandler(svc, logger)
	r.Mount("/api/plans", plansfeature.Routes(plansHandler, sessionMgr))

	chatHandler := chatfeature.NewHandler(svc, logger)
	r.Mount("/api/chat", chatfeature.Routes(chatHandler, sessionMgr))

	accountHandler := accountfeature.NewHandler(svc, sessionMgr, logger)
	r.Mount("/api/account", accountfeature.Routes(accountHandler, sessionMgr))

	advisorHandler := advisorfeature.NewHandler(advisorClient, svc, logger)
	r.Mount("/api/advisor", advisorfeature.Routes(advisorHandler, sessionMgr))

	weatherHandler := weatherfeature.NewHandler(weatherClient, logger)
	r.Mount("/api/weather", weatherfeature.Routes(weatherHandler))

	return r, nil
}

// buildGardenService picks the store implementations for the decided backend
// and assembles the facade.
func buildGardenService(appCfg AppConfig, deps DBDeps, logger *zap.Logger) *garden.Service {
	broker := identity.NewBroker()
	// Prime the signed-out state so the first subscriber gets a synchronous
	// answer instead of waiting for a sign-in.
	broker.Publish(nil)

	cfg := deps.Backend

	if cfg.Connected() {
		db := deps.MongoDatabase
		return garden.NewService(
			cfg,
			plants.NewMongo(db),
			harvests.NewMongo(db),
			plans.NewMongo(db),
			chat.NewMongo(db, logger),
			accounts.NewMongo(db, appCfg.ReauthWindow),
			broker,
			nil,
			logger,
		)
	}

	kv := deps.Local
	return garden.NewService(
		cfg,
		plants.NewLocal(kv, logger),
		harvests.NewLocal(kv, logger),
		plans.NewLocal(kv, logger),
		chat.NewLocal(kv, cfg.ChatPollInterval, logger),
		accounts.NewLocal(kv, logger),
		broker,
		kv,
		logger,
	)
}
