package app

import (
	"context"
	"time"

	"github.com/Brend-VanDenEynde/planner-api/internal/config"
	"github.com/Brend-VanDenEynde/planner-api/internal/services"
)

var (
	globalUserService services.UserService
	globalTaskService services.TaskService
)

func InitServices() {
	globalUserService = services.NewUserService(globalLogger, globalDB, time.Now)
	globalTaskService = services.NewTaskService(globalLogger, globalDB, time.Now)
}

// MustSeedDemoData replaces the stored users and tasks with the demo data
// set when SEED_DEMO_DATA is enabled.
func MustSeedDemoData() {
	if !config.Global().Seed.DemoData {
		return
	}

	seeder := services.NewSeedService(globalLogger, globalDB, globalUserService, globalTaskService)
	_, err := seeder.SeedDemoData(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to seed demo data")
		panic(err)
	}
}
