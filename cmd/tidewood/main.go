// Command tidewood runs the open-world sandbox server: deterministic
// terrain streaming, NPC and animal simulation, and the HTTP plus
// websocket surfaces the browser client talks to.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/talgya/tidewood/internal/api"
	"github.com/talgya/tidewood/internal/config"
	"github.com/talgya/tidewood/internal/engine"
	"github.com/talgya/tidewood/internal/journal"
	"github.com/talgya/tidewood/internal/transport/ws"
)

// ensureJournalDir creates the parent directory of the journal file.
func ensureJournalDir(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		seed       = flag.Int64("seed", 42, "world seed")
		tuningPath = flag.String("config", "tuning.yaml", "tuning file path")
		dbPath     = flag.String("db", "data/tidewood.db", "event journal path")
		spawnX     = flag.Float64("spawn-x", 0, "player start x")
		spawnY     = flag.Float64("spawn-y", 0, "player start y")
	)
	flag.Parse()

	slog.Info("Tidewood open-world sandbox server")

	cfg, err := config.Load(*tuningPath)
	if err != nil {
		slog.Warn("tuning file rejected, using defaults", "path", *tuningPath, "error", err)
	}

	if err := ensureJournalDir(*dbPath); err != nil {
		slog.Warn("journal directory not created", "path", *dbPath, "error", err)
	}
	jrnl, err := journal.Open(*dbPath)
	if err != nil {
		slog.Warn("event journal disabled", "path", *dbPath, "error", err)
		jrnl = nil
	} else {
		defer jrnl.Close()
		slog.Info("event journal opened", "path", *dbPath)
	}

	session := engine.NewSession(cfg, *seed, jrnl)
	session.SetPlayer(*spawnX, *spawnY)

	n := session.World().Pregenerate(*spawnX, *spawnY, 2)
	slog.Info("world ready",
		"seed", *seed,
		"chunks", n,
		"objects", session.World().ObjectCount(),
		"buildings", len(session.World().Buildings()),
	)

	session.SpawnPopulation()

	wsServer := ws.NewServer(session, cfg)
	apiServer := &api.Server{
		Session: session,
		DB:      jrnl,
		Port:    cfg.Server.Port,
		WS:      wsServer.Handler(),
	}
	apiServer.Start()

	loop := engine.NewLoop(session, time.Duration(cfg.Server.FrameIntervalMs)*time.Millisecond)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		loop.Stop()
	}()

	fmt.Printf("\nTidewood is alive: seed %d, %d chunks pregenerated.\n", *seed, n)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", cfg.Server.Port)
	fmt.Println("Starting frame loop... (Ctrl+C to stop)")

	loop.Run()

	fmt.Println("Server stopped.")
}
