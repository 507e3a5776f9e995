package main

import (
	"bufio"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/gbanking/gbanking/internal/auth"
	"github.com/gbanking/gbanking/internal/config"
	"github.com/gbanking/gbanking/internal/events"
	"github.com/gbanking/gbanking/internal/events/kafka"
	"github.com/gbanking/gbanking/internal/interfaces"
	"github.com/gbanking/gbanking/internal/ledger"
	"github.com/gbanking/gbanking/internal/session"
	"github.com/gbanking/gbanking/internal/storage/csvfile"
	"github.com/gbanking/gbanking/internal/storage/memory"
	"github.com/gbanking/gbanking/internal/storage/postgres"
	"github.com/gbanking/gbanking/internal/storage/sqlite"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] gbanking starting...")

	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	credStore, ledgerStore, closer, err := openStores(cfg)
	if err != nil {
		log.Fatalf("[FATAL] open storage (%s): %v", cfg.Storage.Driver, err)
	}
	if closer != nil {
		defer closer.Close()
	}
	log.Printf("[INFO] storage driver: %s", cfg.Storage.Driver)

	var publisher interfaces.EventPublisher = events.NewNoopPublisher()
	if len(cfg.Audit.Brokers) > 0 {
		kp := kafka.NewPublisher(cfg.Audit.Brokers, cfg.Audit.Topic)
		defer kp.Close()
		publisher = kp
		log.Printf("[INFO] audit events -> kafka topic %q", cfg.Audit.Topic)
	}

	guard := session.NewGuard(cfg.Security.MaxAttempts, cfg.LockoutWindow())
	authSvc := auth.NewService(credStore, guard, cfg.Security.Pepper)

	in := bufio.NewScanner(os.Stdin)
	confirmer := ledger.ConfirmerFunc(func(prompt string) bool {
		return promptYesNo(in, os.Stdout, prompt)
	})
	ledgerSvc := ledger.NewService(ledgerStore, publisher, confirmer, cfg.SuspiciousLimit())

	a := &app{
		in:     in,
		out:    os.Stdout,
		auth:   authSvc,
		ledger: ledgerSvc,
		idle:   session.IdlePolicy{Window: cfg.IdleWindow()},
		cfg:    cfg,
	}
	if err := a.run(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	log.Println("[INFO] gbanking stopped")
}

// openStores selects the storage backend from config. The CSV and sqlite
// stores implement both interfaces on one value.
func openStores(cfg *config.Config) (interfaces.CredentialStore, interfaces.LedgerStore, io.Closer, error) {
	switch cfg.Storage.Driver {
	case "memory":
		s := memory.NewStore()
		return s, s, nil, nil
	case "sqlite":
		s, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s, s, nil
	case "postgres":
		s, err := postgres.Open(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s, s, nil
	default:
		s, err := csvfile.Open(cfg.Data.Dir)
		if err != nil {
			return nil, nil, nil, err
		}
		return s, s, nil, nil
	}
}
