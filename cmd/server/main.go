package main

import (
	"flag"
	"log"
	"os"

	"github.com/ledgerdesk/ledgerdesk/internal/app"
	"github.com/ledgerdesk/ledgerdesk/internal/config"
)

func main() {
	defaultPath := "configs/config.yaml"
	if p := os.Getenv("LEDGERDESK_CONFIG"); p != "" {
		defaultPath = p
	}
	configPath := flag.String("config", defaultPath, "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("initialize application: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
