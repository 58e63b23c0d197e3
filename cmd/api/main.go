package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/403errors/ideaflowai/config"
	httpapi "github.com/403errors/ideaflowai/internal/api/http"
	"github.com/403errors/ideaflowai/internal/auth"
	"github.com/403errors/ideaflowai/internal/bootstrap"
	"github.com/403errors/ideaflowai/internal/flows"
	"github.com/403errors/ideaflowai/internal/llm"
	"github.com/403errors/ideaflowai/internal/plan"
	"github.com/403errors/ideaflowai/internal/projects"
	"github.com/403errors/ideaflowai/internal/users"
	"github.com/403errors/ideaflowai/internal/wizard"
)

const serviceName = "ideaflowai-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	app, authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	fs, err := bootstrap.OpenFirestore(ctx, app, &cfg.Firebase)
	if err != nil {
		log.Fatalf("firestore: %v", err)
	}
	defer fs.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	gemini, err := llm.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("gemini: %v", err)
	}

	flowSvc := flows.NewService(gemini)
	assembler := plan.NewAssembler(flowSvc)

	projectRepo := projects.NewRepo(fs)
	sessionStore := wizard.NewStore(rdb, time.Duration(cfg.Wizard.SessionTTLHours)*time.Hour)
	wizardSvc := wizard.NewService(sessionStore, flowSvc, assembler, projectRepo)

	sweeper := wizard.NewSweeper(sessionStore).Start()
	defer sweeper.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		GenerateRPM: cfg.Wizard.GenerateRPM,
		AuthClient:  authClient,
		UserRepo:    users.NewRepo(fs),
		ProjectRepo: projectRepo,
		Wizard:      wizardSvc,
		Flows:       flowSvc,
		Health:      httpapi.NewHealthHandler(serviceName, cfg.App.Version, rdb),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("%s listening on :%s", serviceName, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
