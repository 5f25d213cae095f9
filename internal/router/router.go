package router

import (
	"github.com/gin-gonic/gin"

	"pomodoroclock/backend/internal/handler"
	"pomodoroclock/backend/internal/middleware"
	"pomodoroclock/backend/internal/service"
)

// Handlers groups everything the route table dispatches to.
type Handlers struct {
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Lists   *handler.ListHandler
	Tasks   *handler.TaskHandler
	Friends *handler.FriendHandler
}

type Options struct {
	CORSOrigins []string
	// RateLimiter throttles the /auth routes when set.
	RateLimiter *middleware.RateLimiter
	Metrics     *middleware.Metrics
}

func New(authService *service.AuthService, h Handlers, opts Options) *gin.Engine {
	handler.ConfigureBinding()

	metrics := opts.Metrics
	if metrics == nil {
		metrics = middleware.NewMetrics()
	}

	engine := gin.New()
	engine.Use(
		gin.Logger(),
		gin.Recovery(),
		middleware.CORS(opts.CORSOrigins),
		metrics.Middleware(),
	)
	engine.NoRoute(handler.NotFound)

	engine.GET("/health", handler.Health)
	engine.GET("/metrics", metrics.Handler())

	api := engine.Group("/")
	api.Use(middleware.Authenticate(authService))

	loggedIn := middleware.EnsureLoggedIn()
	correctUser := middleware.EnsureCorrectUserOrAdmin()
	admin := middleware.EnsureAdmin()

	auth := api.Group("/auth")
	if opts.RateLimiter != nil {
		auth.Use(opts.RateLimiter.Middleware())
	}
	auth.POST("/token", h.Auth.Token)
	auth.POST("/register", h.Auth.Register)

	users := api.Group("/users")
	users.POST("", admin, h.Users.Create)
	users.GET("", admin, h.Users.List)
	users.GET("/:username", correctUser, h.Users.Get)
	users.PATCH("/:username", correctUser, h.Users.Update)
	users.PATCH("/:username/increment", correctUser, h.Users.IncrementPomodoros)
	users.DELETE("/:username", correctUser, h.Users.Delete)

	friends := users.Group("/:username/friends")
	friends.GET("", loggedIn, h.Friends.Friends)
	friends.GET("/sent", correctUser, h.Friends.Sent)
	friends.GET("/received", correctUser, h.Friends.Received)
	friends.POST("/request/:other", correctUser, h.Friends.Request)
	friends.GET("/request/:other", middleware.EnsureParticipantOrAdmin("username", "other"), h.Friends.Get)
	friends.PATCH("/request/:other", correctUser, h.Friends.Accept)
	friends.DELETE("/request/:other", correctUser, h.Friends.Remove)

	lists := api.Group("/lists", loggedIn)
	lists.POST("", h.Lists.Create)
	lists.GET("", h.Lists.List)
	lists.GET("/:listId", h.Lists.Get)
	lists.PATCH("/:listId", h.Lists.Update)
	lists.DELETE("/:listId", h.Lists.Delete)

	tasks := lists.Group("/:listId/tasks")
	tasks.POST("", h.Tasks.Create)
	tasks.GET("", h.Tasks.List)
	tasks.DELETE("/remove", h.Tasks.RemoveGroup)
	tasks.GET("/:taskId", h.Tasks.Get)
	tasks.PATCH("/:taskId", h.Tasks.Update)
	tasks.PATCH("/:taskId/increment", h.Tasks.IncrementCycles)
	tasks.DELETE("/:taskId", h.Tasks.Delete)

	return engine
}
