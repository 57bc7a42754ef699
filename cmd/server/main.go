package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"courtside/internal/api"
	"courtside/internal/config"
	"courtside/internal/match"
	"courtside/internal/roster"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	} else {
		log.Println("✅ Loaded environment from .env")
	}

	log.Println("🤾 ================================")
	log.Println("🤾  COURTSIDE - MATCH ENGINE")
	log.Println("🤾 ================================")

	appConfig := config.Load()
	matchCfg := appConfig.Match
	serverCfg := appConfig.Server

	r, err := roster.Load(serverCfg.RosterPath)
	if err != nil {
		log.Fatalf("⛔ Cannot load roster %s: %v", serverCfg.RosterPath, err)
	}
	log.Printf("📋 Roster: %s vs %s - %d players, %d officials",
		r.TeamA, r.TeamB, len(r.Players), len(r.Officials))

	engine := match.NewEngine(r, match.Config{
		HalfLength:          matchCfg.HalfLength,
		TickInterval:        matchCfg.TickInterval,
		ForcedBenchDuration: matchCfg.ForcedBenchDuration,
		PerOfficialCaps:     matchCfg.PerOfficialCaps,
	})

	if err := engine.StartActionLog(serverCfg.ActionLogPath); err != nil {
		log.Printf("⚠️ Action log disabled: %v", err)
	} else {
		log.Printf("📝 Action log: %s", serverCfg.ActionLogPath)
	}

	debugCfg := appConfig.Debug
	if err := api.StartDebugServer(api.ObservabilityConfig{
		Enabled:       debugCfg.Enabled,
		ListenAddr:    debugCfg.ListenAddr,
		BasicAuthUser: debugCfg.BasicAuthUser,
		BasicAuthPass: debugCfg.BasicAuthPass,
	}); err != nil {
		log.Printf("⚠️ Debug server disabled: %v", err)
	}

	var sessions *api.SessionManager
	if serverCfg.ScorekeeperPassword != "" {
		sessions = api.NewSessionManager(serverCfg.ScorekeeperPassword)
		log.Println("🔐 Scorekeeper authentication ENABLED")
	} else {
		log.Println("⚠️ Scorekeeper authentication DISABLED (set SCOREKEEPER_PASSWORD to enable)")
	}

	engine.Start()
	server := api.NewServer(engine, sessions)

	// Graceful shutdown: flush the action trail before exit.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("🛑 Received %s, shutting down", sig)
		engine.Stop()
		engine.StopActionLog()
		server.Stop()
		os.Exit(0)
	}()

	addr := ":" + strconv.Itoa(serverCfg.Port)
	if err := server.Start(addr); err != nil {
		log.Fatalf("⛔ Server error: %v", err)
	}
}
