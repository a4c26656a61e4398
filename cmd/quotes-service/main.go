package main

import (
	"fmt"
	"os"

	"github.com/decioext/quotes-service/internal/auth"
	"github.com/decioext/quotes-service/internal/config"
	"github.com/decioext/quotes-service/internal/db"
	"github.com/decioext/quotes-service/internal/excel"
	httphandler "github.com/decioext/quotes-service/internal/http"
	"github.com/decioext/quotes-service/internal/http/middleware"
	"github.com/decioext/quotes-service/internal/logger"
	"github.com/decioext/quotes-service/internal/pdf"
	"github.com/decioext/quotes-service/internal/repository"
	"github.com/decioext/quotes-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	quoteRepo := repository.NewQuoteRepository(database)
	pdfGenerator := pdf.NewGenerator(cfg.Company.Name, cfg.Company.LogoPath)
	listingGenerator := excel.NewGenerator()
	drafts := service.NewDraftStore()

	quoteService := service.NewQuoteService(quoteRepo, drafts, pdfGenerator, listingGenerator, cfg)

	authenticator := auth.NewAuthenticator(cfg.Auth.Users)
	issuer := auth.NewIssuer(cfg.Auth.AccessSecret)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(quoteService, authenticator, issuer, log)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting quotes service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
