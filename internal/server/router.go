package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/auth"
	"github.com/skillsenselab/quizapi/internal/config"
	"github.com/skillsenselab/quizapi/internal/handlers"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/middleware"
	"github.com/skillsenselab/quizapi/internal/observability"
	"github.com/skillsenselab/quizapi/internal/store"
)

// serviceName labels health responses and trace spans.
const serviceName = "quizapi"

// Deps bundles everything the router needs.
type Deps struct {
	Config  *config.Config
	Store   *store.Store
	Tokens  *auth.TokenService
	Hasher  *auth.PasswordHasher
	Limiter *middleware.RateLimiter
	Log     *logger.Logger
}

// BuildRouter applies the middleware pipeline and registers every route with
// its access policy. Pipeline order matters: recovery wraps everything,
// throttling runs before token parsing so bad actors pay no crypto cost, and
// access control runs last so it sees the authenticated identity.
func BuildRouter(engine *gin.Engine, deps Deps) {
	log := deps.Log
	users := deps.Store.Users()
	verifier := auth.NewVerifier(users, deps.Hasher)

	authHandler := handlers.NewAuthHandler(verifier, deps.Tokens, deps.Hasher, users, log)
	userHandler := handlers.NewUserHandler(users, deps.Hasher, log)
	quizHandler := handlers.NewQuizHandler(deps.Store.Quizzes(), log)
	questionHandler := handlers.NewQuestionHandler(deps.Store.Questions(), log)
	answerHandler := handlers.NewAnswerHandler(deps.Store.Answers(), log)
	storyHandler := handlers.NewStoryHandler(deps.Store.Stories(), log)
	attemptHandler := handlers.NewAttemptHandler(deps.Store.Attempts(), users, log)
	progressHandler := handlers.NewProgressHandler(deps.Store.Progress(), deps.Store.Attempts(), users, log)

	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(deps.Config.CORS))
	engine.Use(middleware.RequestLogger(log))
	if deps.Config.Tracing.Enabled {
		engine.Use(observability.TraceRequests(serviceName))
	}
	engine.Use(deps.Limiter.Handler(log))
	engine.Use(middleware.Authenticate(deps.Tokens, log))
	engine.Use(middleware.AccessControl(policyTable(), log))

	api := engine.Group("/api")

	api.GET("/health", handlers.Health(serviceName, healthChecker(deps.Store)))
	api.GET("/test/public", handlers.PublicProbe)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.GET("/me", authHandler.Me)

	usersGroup := api.Group("/users")
	usersGroup.GET("", userHandler.List)
	usersGroup.POST("", userHandler.Create)
	usersGroup.GET("/me", userHandler.Me)
	usersGroup.PUT("/me", userHandler.UpdateMe)
	usersGroup.GET("/:id", userHandler.Get)
	usersGroup.PUT("/:id", userHandler.Update)
	usersGroup.DELETE("/:id", userHandler.Delete)

	quizzes := api.Group("/quizzes")
	quizzes.GET("", quizHandler.List)
	quizzes.GET("/:id", quizHandler.Get)
	quizzes.POST("", quizHandler.Create)
	quizzes.PUT("/:id", quizHandler.Update)
	quizzes.DELETE("/:id", quizHandler.Delete)

	questions := api.Group("/questions")
	questions.GET("", questionHandler.List)
	questions.GET("/:id", questionHandler.Get)
	questions.GET("/quiz/:quizId", questionHandler.ByQuiz)
	questions.POST("", questionHandler.Create)
	questions.PUT("/:id", questionHandler.Update)
	questions.DELETE("/:id", questionHandler.Delete)

	answers := api.Group("/answers")
	answers.GET("", answerHandler.List)
	answers.GET("/:id", answerHandler.Get)
	answers.GET("/question/:questionId", answerHandler.ByQuestion)
	answers.POST("", answerHandler.Create)
	answers.PUT("/:id", answerHandler.Update)
	answers.DELETE("/:id", answerHandler.Delete)

	stories := api.Group("/stories")
	stories.GET("", storyHandler.List)
	stories.GET("/:id", storyHandler.Get)
	stories.GET("/quiz/:quizId", storyHandler.ByQuiz)
	stories.POST("", storyHandler.Create)
	stories.PUT("/:id", storyHandler.Update)
	stories.DELETE("/:id", storyHandler.Delete)

	attempts := api.Group("/quizAttempts")
	attempts.GET("", attemptHandler.List)
	attempts.GET("/:id", attemptHandler.Get)
	attempts.POST("", attemptHandler.Create)
	attempts.DELETE("/:id", attemptHandler.Delete)

	progress := api.Group("/quizProgresses")
	progress.GET("", progressHandler.List)
	progress.GET("/:id", progressHandler.Get)
	progress.GET("/attempt/:attemptId", progressHandler.ByAttempt)
	progress.POST("", progressHandler.Create)
	progress.DELETE("/:id", progressHandler.Delete)
}

// policyTable declares who may reach which route. Routes not listed fall
// back to requiring authentication.
func policyTable() *middleware.PolicyTable {
	admin := middleware.RequireRole(auth.RoleAdmin)
	return middleware.NewPolicyTable().
		Add(http.MethodPost, "/api/auth/login", middleware.Public()).
		Add(http.MethodPost, "/api/auth/register", middleware.Public()).
		Add(http.MethodGet, "/api/health", middleware.Public()).
		Add(http.MethodGet, "/api/test/public", middleware.Public()).
		Add(http.MethodGet, "/api/users", admin).
		Add(http.MethodPost, "/api/users", admin).
		Add(http.MethodDelete, "/api/users/:id", admin).
		Add(http.MethodPost, "/api/quizzes", admin).
		Add(http.MethodPut, "/api/quizzes/:id", admin).
		Add(http.MethodDelete, "/api/quizzes/:id", admin).
		Add(http.MethodPost, "/api/questions", admin).
		Add(http.MethodPut, "/api/questions/:id", admin).
		Add(http.MethodDelete, "/api/questions/:id", admin).
		Add(http.MethodGet, "/api/answers", admin).
		Add(http.MethodGet, "/api/answers/:id", admin).
		Add(http.MethodPost, "/api/answers", admin).
		Add(http.MethodPut, "/api/answers/:id", admin).
		Add(http.MethodDelete, "/api/answers/:id", admin).
		Add(http.MethodPost, "/api/stories", admin).
		Add(http.MethodPut, "/api/stories/:id", admin).
		Add(http.MethodDelete, "/api/stories/:id", admin)
}

// healthChecker reports database connectivity for the health endpoint.
func healthChecker(s *store.Store) handlers.HealthChecker {
	return func(ctx context.Context) []handlers.ComponentHealth {
		health := handlers.ComponentHealth{Name: "database", Status: "healthy"}
		if err := s.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Error = err.Error()
		}
		return []handlers.ComponentHealth{health}
	}
}
