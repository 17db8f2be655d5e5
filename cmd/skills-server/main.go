// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Aljon0/AI-RB-API/internal/ai"
	"github.com/Aljon0/AI-RB-API/internal/config"
	"github.com/Aljon0/AI-RB-API/internal/logger"
	"github.com/Aljon0/AI-RB-API/internal/scheduler"
	"github.com/Aljon0/AI-RB-API/internal/server"
)

var configPath = flag.String("config", "", "Path to yaml config file (optional)")

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.Init(cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logg.Close()

	logger.Printf("skills-server starting: port=%d model=%s", cfg.Port, cfg.OpenAIModel)

	client := ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)

	sched := scheduler.New(client, scheduler.Config{
		MinInterval:  time.Duration(cfg.Queue.MinIntervalMS) * time.Millisecond,
		BaseDelay:    time.Duration(cfg.Queue.BaseDelayMS) * time.Millisecond,
		RetryCeiling: cfg.Queue.RetryCeiling,
	})

	schedCtx, schedCancel := context.WithCancel(context.Background())
	go sched.Run(schedCtx)

	skillsHandler := server.NewSkillsHandler(sched)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: server.Routes(skillsHandler, cfg.AllowedOrigins),
	}

	go func() {
		log.Printf("HTTP server listening on %d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	waitForShutdown(httpServer, schedCancel)
}

func waitForShutdown(httpServer *http.Server, schedCancel context.CancelFunc) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Println("Shutting down server...")

	// Stopping the HTTP server first lets in-flight suggestion requests
	// drain; the scheduler then fails any jobs still queued.
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	schedCancel()
}
