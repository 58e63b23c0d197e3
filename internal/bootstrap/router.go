package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/403errors/ideaflowai/internal/api/http"
	"github.com/403errors/ideaflowai/internal/api/http/middleware"
	authmw "github.com/403errors/ideaflowai/internal/auth/middleware"
	"github.com/403errors/ideaflowai/internal/projects"
	"github.com/403errors/ideaflowai/internal/users"
	"github.com/403errors/ideaflowai/internal/wizard"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	GenerateRPM int

	AuthClient  *fbauth.Client
	UserRepo    *users.Repo
	ProjectRepo *projects.Repo
	Wizard      *wizard.Service
	Flows       projects.Generator
	Health      *httpapi.HealthHandler
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RequestID())

	dep.Health.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(authmw.FirebaseAuth(dep.AuthClient, dep.UserRepo))

	generate := middleware.PerUserRateLimit(dep.GenerateRPM)

	wizard.Register(api.Group("/wizard"), dep.Wizard, generate)
	projects.Register(api.Group("/projects"), dep.ProjectRepo, dep.Flows, generate)

	return r
}

func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}
