package main

import (
	"log"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/app"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
)

func main() {
	log.Println("starting joystick visualizer (3D follow camera)")

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := app.RunGame(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
