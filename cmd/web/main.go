package main

import (
	"log"

	"github.com/Belarts250/Embedded-Systems-Y2/internal/app"
	"github.com/Belarts250/Embedded-Systems-Y2/internal/config"
)

func main() {
	log.Println("starting joystick web viewer")

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := app.RunWeb(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
