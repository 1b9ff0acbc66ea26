package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jhoicas/Conciliacion-api/internal/bootstrap"
	"github.com/jhoicas/Conciliacion-api/internal/interfaces/cli"
	"github.com/jhoicas/Conciliacion-api/pkg/config"
	"github.com/jhoicas/Conciliacion-api/pkg/logger"
)

func main() {
	// .env opcional; las variables del entorno tienen prioridad
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Out:     os.Stderr,
		Service: "conciliador",
	})

	app := &cli.App{
		Config: cfg,
		Log:    log.Component("cli"),
		Open: func(ctx context.Context) (*cli.Services, func(), error) {
			deps, err := bootstrap.New(ctx, cfg, log)
			if err != nil {
				return nil, nil, err
			}
			return &cli.Services{
				Summary:   deps.Dashboard,
				Telephony: deps.Telephony,
				Reports:   deps.Reports,
			}, deps.Close, nil
		},
	}

	if err := cli.NewRootCmd(app).ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("comando fallido")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
