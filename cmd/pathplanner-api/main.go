// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"pathplanner/internal/ai"
	"pathplanner/internal/config"
	httptransport "pathplanner/internal/http"
	"pathplanner/internal/infra"
	"pathplanner/internal/maps"
	"pathplanner/internal/modules/session"
	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
	"pathplanner/internal/service"
	"pathplanner/internal/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, closeProvider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		logger.Fatal("model provider init", zap.Error(err))
	}
	defer closeProvider()

	var geocoder maps.Geocoder
	if cfg.Maps.APIKey != "" {
		gs, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("geocoder init", zap.Error(err))
		}
		geocoder = gs
	} else {
		logger.Warn("PATHPLANNER_MAPS_API_KEY not set; prices use the default currency symbol")
	}

	var synth speech.Synthesizer
	if cfg.Speech.Enabled {
		tts, err := speech.NewGoogleTTS(ctx, cfg.Speech.CredentialsFile)
		if err != nil {
			logger.Fatal("text-to-speech init", zap.Error(err))
		}
		defer tts.Close()
		synth = tts
	}

	var store session.Store = session.NewMemoryStore(cfg.Session.TTL)
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Fatal("redis init", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		store = session.NewRedisStore(redisClient, cfg.Session.TTL)
	}

	optionsModel := ai.Instrument(provider, ai.CallSiteOptions, cfg.AI.Timeout, logger)
	summaryModel := ai.Instrument(provider, ai.CallSiteSummary, cfg.AI.Timeout, logger)
	translateModel := ai.Instrument(provider, ai.CallSiteTranslate, cfg.AI.Timeout, logger)

	booking := travel.DefaultBookingTable()
	currency := travel.NewCurrencyResolver(geocoder, travel.DefaultCurrencyTable(), logger.Named("currency"))
	travelSvc := travel.NewService(optionsModel, currency, cfg.Maps.Timeout, logger.Named("travel"))
	summarySvc := summary.NewService(summaryModel, translateModel, synth, cfg.Speech.Timeout, logger.Named("summary"))
	sessionSvc := session.NewService(store, logger.Named("session"))
	planner := service.NewTripPlanner(travelSvc, summarySvc, sessionSvc, logger.Named("planner"))

	server, err := httptransport.NewServer(cfg.HTTP.Addr, httptransport.RouterDeps{
		Planner:     planner,
		Sessions:    sessionSvc,
		Summary:     summarySvc,
		Booking:     booking,
		SessionTTL:  cfg.Session.TTL,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Log:         logger,
	})
	if err != nil {
		logger.Fatal("http server init", zap.Error(err))
	}

	if err := server.Run(ctx); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
}
