package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/brotli"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lumela/schoolsync-backend/internal/config"
	"github.com/lumela/schoolsync-backend/internal/handler"
	"github.com/lumela/schoolsync-backend/internal/middleware"
	"github.com/lumela/schoolsync-backend/internal/model"
	"github.com/lumela/schoolsync-backend/internal/response"
	"github.com/lumela/schoolsync-backend/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Learner    *handler.LearnerHandler
	Parent     *handler.ParentHandler
	Teacher    *handler.TeacherHandler
	Class      *handler.SchoolClassHandler
	Event      *handler.EventHandler
	Permission *handler.PermissionHandler
	Attendance *handler.AttendanceHandler
	Recipient  *handler.RecipientHandler
	Import     *handler.ImportHandler
	Staff      *handler.StaffHandler
	Role       *handler.RoleHandler
	Setting    *handler.SettingHandler
	Dashboard  *handler.DashboardHandler
	WS         *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli compression globally.
	router.Use(brotli.Brotli(brotli.DefaultCompression))

	// Serve generated spreadsheet exports statically with short-lived caching.
	exportsGroup := router.Group("/exports")
	exportsGroup.Use(middleware.CacheControl(time.Hour))
	{
		exportsGroup.Static("/", cfg.ExportDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus metrics.
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireStaffJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireStaffJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. WebSocket Group (Staff WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireStaffWSAuth(authService))
	{
		ws.GET("/monitor", handlers.WS.MonitorStream)
	}

	// ─── 3. Admin Group (JWT + Session + RBAC) ─────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(
		middleware.RequireStaffJWT(authService),
		middleware.CheckStaffSession(authService),
	)
	{
		// Dashboard (open to all staff)
		adminAPI.GET("/dashboard", handlers.Dashboard.Get)

		// Learner management
		adminAPI.GET("/learners",
			middleware.RequirePermission(model.PermissionLearnersRead),
			handlers.Learner.List,
		)
		adminAPI.GET("/learners/:id",
			middleware.RequirePermission(model.PermissionLearnersRead),
			handlers.Learner.Get,
		)
		adminAPI.POST("/learners",
			middleware.RequirePermission(model.PermissionLearnersWrite),
			handlers.Learner.Create,
		)
		adminAPI.PUT("/learners/:id",
			middleware.RequirePermission(model.PermissionLearnersWrite),
			handlers.Learner.Update,
		)
		adminAPI.DELETE("/learners/:id",
			middleware.RequirePermission(model.PermissionLearnersWrite),
			handlers.Learner.Delete,
		)
		adminAPI.GET("/learners/:id/permissions",
			middleware.RequirePermission(model.PermissionConsentsRead),
			handlers.Permission.ListByLearner,
		)

		// Bulk imports
		adminAPI.POST("/imports/learners",
			middleware.RequirePermission(model.PermissionLearnersImport),
			handlers.Import.ImportLearners,
		)
		adminAPI.POST("/imports/grade-reassignments",
			middleware.RequirePermission(model.PermissionLearnersImport),
			handlers.Import.ReassignGrades,
		)

		// Parent management
		adminAPI.GET("/parents",
			middleware.RequirePermission(model.PermissionParentsRead),
			handlers.Parent.List,
		)
		adminAPI.GET("/parents/:id",
			middleware.RequirePermission(model.PermissionParentsRead),
			handlers.Parent.Get,
		)
		adminAPI.POST("/parents",
			middleware.RequirePermission(model.PermissionParentsWrite),
			handlers.Parent.Create,
		)
		adminAPI.PUT("/parents/:id",
			middleware.RequirePermission(model.PermissionParentsWrite),
			handlers.Parent.Update,
		)
		adminAPI.DELETE("/parents/:id",
			middleware.RequirePermission(model.PermissionParentsWrite),
			handlers.Parent.Delete,
		)

		// Teacher management
		adminAPI.GET("/teachers",
			middleware.RequirePermission(model.PermissionTeachersRead),
			handlers.Teacher.List,
		)
		adminAPI.GET("/teachers/:id",
			middleware.RequirePermission(model.PermissionTeachersRead),
			handlers.Teacher.Get,
		)
		adminAPI.POST("/teachers",
			middleware.RequirePermission(model.PermissionTeachersWrite),
			handlers.Teacher.Create,
		)
		adminAPI.PUT("/teachers/:id",
			middleware.RequirePermission(model.PermissionTeachersWrite),
			handlers.Teacher.Update,
		)
		adminAPI.DELETE("/teachers/:id",
			middleware.RequirePermission(model.PermissionTeachersWrite),
			handlers.Teacher.Delete,
		)

		// Grade and class management
		adminAPI.GET("/grades",
			middleware.RequirePermission(model.PermissionClassesRead),
			handlers.Class.ListGrades,
		)
		adminAPI.POST("/grades",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Class.CreateGrade,
		)
		adminAPI.PUT("/grades/:id",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Class.UpdateGrade,
		)
		adminAPI.DELETE("/grades/:id",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Class.DeleteGrade,
		)
		adminAPI.GET("/classes",
			middleware.RequirePermission(model.PermissionClassesRead),
			handlers.Class.ListClasses,
		)
		adminAPI.POST("/classes",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Class.CreateClass,
		)
		adminAPI.PUT("/classes/:id",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Class.UpdateClass,
		)
		adminAPI.DELETE("/classes/:id",
			middleware.RequirePermission(model.PermissionClassesWrite),
			handlers.Class.DeleteClass,
		)

		// Event and team management
		adminAPI.GET("/events",
			middleware.RequirePermission(model.PermissionEventsRead),
			handlers.Event.ListEvents,
		)
		adminAPI.GET("/events/:id",
			middleware.RequirePermission(model.PermissionEventsRead),
			handlers.Event.GetEvent,
		)
		adminAPI.POST("/events",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.CreateEvent,
		)
		adminAPI.PUT("/events/:id",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.UpdateEvent,
		)
		adminAPI.DELETE("/events/:id",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.DeleteEvent,
		)
		adminAPI.GET("/events/:id/teams",
			middleware.RequirePermission(model.PermissionEventsRead),
			handlers.Event.ListTeams,
		)
		adminAPI.POST("/events/:id/teams",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.CreateTeam,
		)
		adminAPI.DELETE("/teams/:id",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.DeleteTeam,
		)
		adminAPI.POST("/teams/:id/members",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.AddTeamMember,
		)
		adminAPI.DELETE("/teams/:id/members/:learnerId",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.RemoveTeamMember,
		)

		// Activity group management
		adminAPI.GET("/activity-groups",
			middleware.RequirePermission(model.PermissionEventsRead),
			handlers.Event.ListActivityGroups,
		)
		adminAPI.POST("/activity-groups",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.CreateActivityGroup,
		)
		adminAPI.DELETE("/activity-groups/:id",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.DeleteActivityGroup,
		)
		adminAPI.POST("/activity-groups/:id/members",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.AddActivityGroupMember,
		)
		adminAPI.DELETE("/activity-groups/:id/members/:learnerId",
			middleware.RequirePermission(model.PermissionEventsWrite),
			handlers.Event.RemoveActivityGroupMember,
		)
		adminAPI.GET("/activity-groups/:id/permissions",
			middleware.RequirePermission(model.PermissionConsentsRead),
			handlers.Permission.ListByActivityGroup,
		)

		// Parent consents
		adminAPI.POST("/permissions",
			middleware.RequirePermission(model.PermissionConsentsWrite),
			handlers.Permission.Create,
		)
		adminAPI.DELETE("/permissions/:id",
			middleware.RequirePermission(model.PermissionConsentsWrite),
			handlers.Permission.Delete,
		)

		// Attendance
		adminAPI.GET("/attendance/checklist",
			middleware.RequirePermission(model.PermissionAttendanceRead),
			handlers.Attendance.Checklist,
		)
		adminAPI.POST("/attendance",
			middleware.RequirePermission(model.PermissionAttendanceWrite),
			handlers.Attendance.Capture,
		)
		adminAPI.GET("/attendance/:id",
			middleware.RequirePermission(model.PermissionAttendanceRead),
			handlers.Attendance.Get,
		)
		adminAPI.POST("/attendance/:id/export",
			middleware.RequirePermission(model.PermissionAttendanceRead),
			handlers.Attendance.Export,
		)

		// Recipient lists
		adminAPI.GET("/recipients/class/:id",
			middleware.RequirePermission(model.PermissionRecipientsRead),
			handlers.Recipient.ClassList,
		)
		adminAPI.GET("/recipients/teachers",
			middleware.RequirePermission(model.PermissionRecipientsRead),
			handlers.Recipient.TeachersList,
		)
		adminAPI.GET("/recipients/parent/:id",
			middleware.RequirePermission(model.PermissionRecipientsRead),
			handlers.Recipient.ParentList,
		)
		adminAPI.GET("/recipients/global",
			middleware.RequirePermission(model.PermissionRecipientsRead),
			handlers.Recipient.GlobalList,
		)

		// Staff account management
		adminAPI.GET("/staff",
			middleware.RequirePermission(model.PermissionStaffRead),
			handlers.Staff.List,
		)
		adminAPI.GET("/staff/:id",
			middleware.RequirePermission(model.PermissionStaffRead),
			handlers.Staff.Get,
		)
		adminAPI.POST("/staff",
			middleware.RequirePermission(model.PermissionStaffWrite),
			handlers.Staff.Create,
		)
		adminAPI.PUT("/staff/:id",
			middleware.RequirePermission(model.PermissionStaffWrite),
			handlers.Staff.Update,
		)
		adminAPI.DELETE("/staff/:id",
			middleware.RequirePermission(model.PermissionStaffWrite),
			handlers.Staff.Delete,
		)

		// Role management
		adminAPI.GET("/roles",
			middleware.RequirePermission(model.PermissionRolesRead),
			handlers.Role.List,
		)
		adminAPI.GET("/roles/permissions",
			middleware.RequirePermission(model.PermissionRolesRead),
			handlers.Role.Permissions,
		)
		adminAPI.GET("/roles/:id",
			middleware.RequirePermission(model.PermissionRolesRead),
			handlers.Role.Get,
		)
		adminAPI.POST("/roles",
			middleware.RequirePermission(model.PermissionRolesWrite),
			handlers.Role.Create,
		)
		adminAPI.PUT("/roles/:id",
			middleware.RequirePermission(model.PermissionRolesWrite),
			handlers.Role.Update,
		)
		adminAPI.DELETE("/roles/:id",
			middleware.RequirePermission(model.PermissionRolesWrite),
			handlers.Role.Delete,
		)

		// App settings
		settingsGroup := adminAPI.Group("/settings")
		{
			settingsGroup.GET("", middleware.RequirePermission(model.PermissionSettingsRead), handlers.Setting.List)
			settingsGroup.PUT("", middleware.RequirePermission(model.PermissionSettingsWrite), handlers.Setting.Update)
		}
	}

	return router
}
