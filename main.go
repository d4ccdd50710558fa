package main

import (
	"meeting-scheduler/core/logger"
	"meeting-scheduler/core/server"
)

// @title Meeting Scheduler API
// @version 1.0
// @description Assigns meetings to concrete time slots from participant availability.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
