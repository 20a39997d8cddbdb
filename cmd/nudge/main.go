package main

import (
	"fmt"
	"os"

	"nudge/internal/config"
	"nudge/internal/reminder"
	"nudge/internal/storage"
	"nudge/internal/task"
	"nudge/internal/ui"
)

func main() {
	cfg, err := config.LoadOrCreate(config.ResolveConfigPath())
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	kv, err := openBackend(cfg)
	if err != nil {
		fmt.Printf("failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer kv.Close()

	store := task.NewStore(kv)
	if err := store.Load(); err != nil {
		fmt.Printf("failed to load tasks: %v\n", err)
		os.Exit(1)
	}

	settings, err := reminder.LoadSettings(kv)
	if err != nil {
		fmt.Printf("failed to load reminder settings: %v\n", err)
		os.Exit(1)
	}

	clock := reminder.SystemClock{}
	alerts := ui.NewAlertBuffer()

	var notifier reminder.Notifier = alerts
	if pr, ok := notifier.(reminder.PermissionRequester); ok {
		if pr.RequestPermission() == reminder.PermissionDenied {
			fmt.Println("Notifications blocked.")
			os.Exit(1)
		}
	}

	daily := reminder.NewDaily(kv, notifier, clock, settings)
	perTask := reminder.NewPerTask(store, notifier, clock)

	if err := ui.Run(store, daily, perTask, clock, alerts, cfg); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

func openBackend(cfg config.Config) (storage.KV, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return storage.OpenFile(cfg.StorePath)
	case config.BackendSQLite, "":
		return storage.OpenSQLite(cfg.StorePath)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
