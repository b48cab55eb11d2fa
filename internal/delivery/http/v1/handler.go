package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Brend-VanDenEynde/planner-api/internal/services"
)

type Handler interface {
	HandleRequestID(c *gin.Context)
	HandleAccessLog(c *gin.Context)

	HandleWelcome(c *gin.Context)
	HandleHealth(c *gin.Context)

	HandleGetUsers(c *gin.Context)
	HandleGetUser(c *gin.Context)
	HandleCreateUser(c *gin.Context)
	HandleUpdateUser(c *gin.Context)
	HandleDeleteUser(c *gin.Context)
	HandleGetUserTasks(c *gin.Context)
	HandleGetUserStats(c *gin.Context)

	HandleGetTasks(c *gin.Context)
	HandleGetOverdueTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleSetTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	users  services.UserService
	tasks  services.TaskService
	// now decides what "today" means for due date validation.
	now func() time.Time
}

func New(
	logger zerolog.Logger,
	userService services.UserService,
	taskService services.TaskService,
	now func() time.Time,
) Handler {
	return &handlerImpl{
		logger: logger,
		users:  userService,
		tasks:  taskService,
		now:    now,
	}
}

// NewEngine returns a gin engine with recovery, request id and access log
// middleware and the planner API mounted. Handlers pass the gin context to
// the services, so the request context is used as its fallback and a
// client disconnect cancels running queries.
func NewEngine(h Handler) *gin.Engine {
	engine := gin.New()
	engine.ContextWithFallback = true
	engine.Use(gin.Recovery())
	engine.Use(h.HandleRequestID)
	engine.Use(h.HandleAccessLog)
	RegisterRoutes(engine, h)
	return engine
}

// RegisterRoutes mounts the planner API on router.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.GET("/", h.HandleWelcome)

	api := router.Group("/api")
	api.GET("/health", h.HandleHealth)

	usersRouter := api.Group("/users")
	usersRouter.GET("", h.HandleGetUsers)
	usersRouter.POST("", h.HandleCreateUser)
	usersRouter.GET("/:id", h.HandleGetUser)
	usersRouter.PUT("/:id", h.HandleUpdateUser)
	usersRouter.DELETE("/:id", h.HandleDeleteUser)
	usersRouter.GET("/:id/tasks", h.HandleGetUserTasks)
	usersRouter.GET("/:id/stats", h.HandleGetUserStats)

	tasksRouter := api.Group("/tasks")
	tasksRouter.GET("", h.HandleGetTasks)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("/overdue", h.HandleGetOverdueTasks)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)
	tasksRouter.PUT("/:id/status", h.HandleSetTaskStatus)
	tasksRouter.PATCH("/:id/status", h.HandleSetTaskStatus)
}
