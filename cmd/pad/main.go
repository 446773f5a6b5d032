package main

import (
	"log"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/app"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
)

func main() {
	log.Println("starting joystick visualizer (2D pad)")

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := app.RunPad(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
