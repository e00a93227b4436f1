package feedserver

import (
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"github.com/ifkeeper/keeper-commons-utils/component-base/auth"
	"github.com/ifkeeper/keeper-commons-utils/component-base/core"
	"github.com/ifkeeper/keeper-commons-utils/component-base/version"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/internal/feedserver/controller/v1/id"
	"github.com/ifkeeper/keeper-commons-utils/internal/feedserver/controller/v1/post"
	"github.com/ifkeeper/keeper-commons-utils/internal/pkg/middleware"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

func (s *apiServer) installMiddlewares() {
	run := s.opts.ServerRunOptions

	s.engine.Use(middleware.Defaults(run.Mode)...)
	if len(run.CORSOrigins) > 0 {
		s.engine.Use(middleware.Cors(run.CORSOrigins))
	}
	if s.limiter != nil {
		s.engine.Use(middleware.RateLimit(s.limiter))
	}
}

func (s *apiServer) installRoutes() {
	s.installSystemRoutes()

	s.engine.NoRoute(func(c *gin.Context) {
		core.WriteResponse(c, errors.WithCode(code.ErrPageNotFound, "page not found"), nil)
	})

	postController := post.NewPostController(s.srv)
	idController := id.NewIDController(s.srv)

	v1 := s.engine.Group("/v1")
	{
		posts := v1.Group("/posts")
		{
			if jwt := s.opts.JwtOptions; jwt.Enabled() {
				posts.POST("", middleware.Auth(jwt.Audience, auth.StaticKey(jwt.SecretID, jwt.SecretKey)), postController.Create)
			} else {
				posts.POST("", postController.Create)
			}
			posts.GET("/:postID", postController.Get)
		}

		users := v1.Group("/users/:userTag")
		{
			users.GET("/posts", postController.List)
			users.GET("/week", postController.Week)
		}

		ids := v1.Group("/ids")
		{
			ids.GET("/post", idController.PostID)
			ids.GET("/week", idController.WeekID)
			ids.GET("/parse/:postID", idController.Parse)
		}
	}
}

func (s *apiServer) installSystemRoutes() {
	run := s.opts.ServerRunOptions

	if run.Healthz {
		s.engine.GET("/healthz", func(c *gin.Context) {
			if s.monitor != nil {
				if err := s.monitor.Up(); err != nil {
					c.JSON(http.StatusServiceUnavailable, gin.H{"status": "redis down"})
					return
				}
			}
			core.WriteResponse(c, nil, map[string]string{"status": "ok"})
		})
	}

	if run.EnableMetrics {
		prometheus := ginprometheus.NewPrometheus("gin")
		prometheus.Use(s.engine)
	}

	if run.EnableProfiling {
		pprof.Register(s.engine)
	}

	s.engine.GET("/version", func(c *gin.Context) {
		core.WriteResponse(c, nil, version.Get())
	})
}
