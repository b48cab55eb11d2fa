package app

import (
	// Loads a .env file from the working directory, if any, before the
	// env is read.
	_ "github.com/joho/godotenv/autoload"

	"github.com/Brend-VanDenEynde/planner-api/internal/config"
)

// MustReadEnv reads and validates the configuration and installs it as the
// global config.
func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("storage_driver", cfg.Storage.Driver).
		Bool("seed_demo_data", cfg.Seed.DemoData).
		Msg("read env")

	config.SetGlobal(cfg)
}
