package http

import (
	"context"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"intranet/internal/domain"
	"intranet/internal/metrics"
	"intranet/internal/service"
)

// RouterOptions agrupa los ajustes del router que no son handlers.
type RouterOptions struct {
	AllowedOrigins []string
	HealthCheck    func(ctx context.Context) error
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(logger *zap.Logger, authServ *service.AuthService, h Handlers, opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), metricsMiddleware())
	if len(opts.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(opts.AllowedOrigins))
	}

	r.GET("/healthz", healthHandler(opts.HealthCheck))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authenticated := AuthMiddleware(logger, authServ)
	professor := AuthMiddleware(logger, authServ, domain.RoleProfessor)

	auth := r.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/register", h.Auth.Register)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/session", authenticated, h.Auth.Session)

	users := r.Group("/users")
	users.GET("", professor, h.Users.ListUsers)
	users.POST("", professor, h.Users.CreateUser)
	users.GET("/:id", authenticated, h.Users.GetUser)
	users.PUT("/:id", authenticated, h.Users.UpdateUser)
	users.DELETE("/:id", professor, h.Users.DeleteUser)

	cycles := r.Group("/cycles")
	cycles.GET("", authenticated, h.Cycles.ListCycles)
	cycles.GET("/:id", authenticated, h.Cycles.GetCycle)
	cycles.POST("", professor, h.Cycles.CreateCycle)
	cycles.PUT("/:id", professor, h.Cycles.UpdateCycle)
	cycles.DELETE("/:id", professor, h.Cycles.DeleteCycle)

	courses := r.Group("/courses")
	courses.GET("", authenticated, h.Courses.ListCourses)
	courses.GET("/:id", authenticated, h.Courses.GetCourse)
	courses.POST("", professor, h.Courses.CreateCourse)
	courses.PUT("/:id", professor, h.Courses.UpdateCourse)
	courses.DELETE("/:id", professor, h.Courses.DeleteCourse)
	courses.GET("/:id/students", authenticated, h.Courses.ListStudents)
	courses.POST("/:id/enrollments", professor, h.Courses.Enroll)
	courses.DELETE("/:id/enrollments/:studentId", professor, h.Courses.Unenroll)
	courses.GET("/:id/tasks", authenticated, h.Coursework.ListTasks)
	courses.GET("/:id/exams", authenticated, h.Coursework.ListExams)
	courses.GET("/:id/resources", authenticated, h.Coursework.ListResources)
	courses.GET("/:id/schedules", authenticated, h.Schedules.ListSchedules)

	tasks := r.Group("/tasks")
	tasks.GET("/:id", authenticated, h.Coursework.GetTask)
	tasks.POST("", professor, h.Coursework.CreateTask)
	tasks.PUT("/:id", professor, h.Coursework.UpdateTask)
	tasks.DELETE("/:id", professor, h.Coursework.DeleteTask)

	exams := r.Group("/exams")
	exams.GET("/:id", authenticated, h.Coursework.GetExam)
	exams.POST("", professor, h.Coursework.CreateExam)
	exams.PUT("/:id", professor, h.Coursework.UpdateExam)
	exams.DELETE("/:id", professor, h.Coursework.DeleteExam)

	resources := r.Group("/resources")
	resources.GET("/:id", authenticated, h.Coursework.GetResource)
	resources.POST("", professor, h.Coursework.CreateResource)
	resources.PUT("/:id", professor, h.Coursework.UpdateResource)
	resources.DELETE("/:id", professor, h.Coursework.DeleteResource)

	schedules := r.Group("/schedules")
	schedules.GET("/:id", authenticated, h.Schedules.GetSchedule)
	schedules.POST("", professor, h.Schedules.CreateSchedule)
	schedules.PUT("/:id", professor, h.Schedules.UpdateSchedule)
	schedules.DELETE("/:id", professor, h.Schedules.DeleteSchedule)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// metricsMiddleware registra conteo y latencia por ruta (patron, no path literal).
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// healthHandler responde 503 si la base de datos no contesta.
func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
