package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/motion_keyboard/internal/app"
	"github.com/relabs-tech/motion_keyboard/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	ip := flag.String("ip", "127.0.0.1", "bridge IP address to send to")
	port := flag.Int("port", 0, "bridge port to send to (overrides LISTEN_PORT)")
	flag.Parse()

	log.Println("starting motion-keyboard synthetic wearable producer (mock)")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg.ListenIP = *ip
	if *port != 0 {
		cfg.ListenPort = *port
	}
	config.SetGlobal(cfg)

	if err := app.RunProducer(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
