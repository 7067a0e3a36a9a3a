package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/Jacobbrewer1/swig/pkg/config"
	"github.com/Jacobbrewer1/swig/pkg/logging"
	flag "github.com/spf13/pflag"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalln(err)
	}

	configPath := flag.StringP("config", "c", config.DefaultPath(), "Path to the ticket configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln(err)
	}

	a, err := InitializeApp(cfg)
	if err != nil {
		log.Fatalln(err)
	}

	a.Info("Starting application", slog.String("config", *configPath))
	if err := a.Run(); err != nil {
		a.Error("Error running application", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	}
}
