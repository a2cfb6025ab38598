// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text


package main

import (
	"flag"
	"log"

	"github.com/relabs-tech/motion_keyboard/internal/app"
	"github.com/relabs-tech/motion_keyboard/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file (optional)")
	ip := flag.String("ip", "", "IP address to listen on (overrides LISTEN_IP)")
	port := flag.Int("port", 0, "port to listen on (overrides LISTEN_PORT)")
	mode := flag.String("mode", "", "control mode: tilt, swivel or both (overrides CONTROL_MODE)")
	injector := flag.String("injector", "", "key injection backend: uinput or log (overrides INJECTOR)")
	flag.Parse()

	log.Println("starting motion-keyboard bridge (wearable OSC → synthetic key events)")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *ip != "" {
		cfg.ListenIP = *ip
	}
	if *port != 0 {
		cfg.ListenPort = *port
	}
	if *mode != "" {
		cfg.ControlMode = *mode
	}
	if *injector != "" {
		cfg.Injector = *injector
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	config.SetGlobal(cfg)

	if err := app.RunBridge(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
