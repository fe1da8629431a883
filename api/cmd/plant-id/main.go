package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/apex/log"

	"plant-id/api/internal/catalogue"
	"plant-id/api/internal/config"
	"plant-id/api/internal/handle"
	"plant-id/api/internal/httpserver"
	"plant-id/api/internal/metrics"
	"plant-id/api/internal/vision"
	"plant-id/api/internal/vision/gemini"
	"plant-id/api/internal/vision/openai"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg.LogLevel, cfg.LogFormat)
	metrics.Register()

	oa := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	if strings.TrimSpace(cfg.OpenAIBaseURL) != "" {
		oa.BaseURL = cfg.OpenAIBaseURL
	}
	oa.MaxTokens = cfg.MaxTokens
	gm := gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	gm.MaxTokens = cfg.MaxTokens

	engines := &vision.Engines{OpenAI: oa, Gemini: gm}
	eng, err := engines.GetEngine(cfg.Provider)
	if err != nil {
		log.WithError(err).Fatal("invalid PROVIDER")
	}
	if vision.Available(eng) {
		log.WithFields(log.Fields{"provider": eng.Name(), "model": eng.GetModel()}).Info("provider configured")
	} else {
		log.WithField("provider", eng.Name()).Warn("no provider credential, identification runs in demo mode")
	}

	plants, err := catalogue.Load()
	if err != nil {
		log.WithError(err).Fatal("load catalogue")
	}

	h := handle.New(engines, plants, handle.Options{
		Provider:       cfg.Provider,
		RequestTimeout: cfg.RequestTimeout,
		MaxImageBytes:  cfg.MaxImageBytes,
	})
	router := httpserver.New(h, httpserver.Options{CORSOrigin: cfg.CORSOrigin})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := httpserver.Run(ctx, ":"+cfg.Port, router); err != nil {
		log.WithError(err).Fatal("server failed")
	}
	log.Info("server exited")
}
