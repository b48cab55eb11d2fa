package main

import "github.com/Brend-VanDenEynde/planner-api/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustOpenStorage()
	defer app.CloseStorage()

	app.InitServices()
	app.MustSeedDemoData()

	app.MustListenAndServeHTTP()
}
