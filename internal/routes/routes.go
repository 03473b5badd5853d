package routes

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/audit"
	"github.com/BruksfildServices01/appointment-scheduler/internal/clock"
	"github.com/BruksfildServices01/appointment-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/appointment-scheduler/internal/db"
	domain "github.com/BruksfildServices01/appointment-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/appointment-scheduler/internal/events"
	"github.com/BruksfildServices01/appointment-scheduler/internal/handlers"
	"github.com/BruksfildServices01/appointment-scheduler/internal/infra/redislock"
	infraRepo "github.com/BruksfildServices01/appointment-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/appointment-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/catalog"
	ucNotification "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/notification"
	ucProfessional "github.com/BruksfildServices01/appointment-scheduler/internal/usecase/professional"
	"github.com/BruksfildServices01/appointment-scheduler/internal/validators"
)

// Deps are the process-wide singletons built by main.
type Deps struct {
	DB        *gorm.DB
	Redis     redis.UniversalClient // nil: in-process lock, no rate limit
	Config    *config.Config
	Logger    *slog.Logger
	Clock     clock.Clock
	Audit     *audit.Dispatcher
	AuditLogs *audit.Logger
	Events    events.Publisher
}

// Workers are background loops sharing the HTTP use cases.
type Workers struct {
	AutoCompleter *ucAppointment.AutoCompleter
	Reminder      *ucAppointment.Reminder
}

func RegisterRoutes(r *gin.Engine, d Deps) Workers {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(d.Logger),
		middleware.CORSMiddleware(),
		middleware.Timeout(cfg.RequestTimeout),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(d.DB)
	professionalRepo := infraRepo.NewProfessionalGormRepository(d.DB)

	policy := domain.Policy{
		StartHour:      cfg.WorkStartHour,
		EndHour:        cfg.WorkEndHour,
		SlotMinutes:    cfg.SlotMinutes,
		CancelLeadTime: cfg.CancelLeadTime,
	}

	opts := []domain.Option{domain.WithPolicy(policy)}
	if d.Redis != nil {
		opts = append(opts, domain.WithLocker(redislock.New(d.Redis, d.Logger, redislock.Config{
			TTL: cfg.LockTTL,
		})))
	}

	calculator := domain.NewCalculator(serviceRepo, userRepo, appointmentRepo, policy)
	manager := domain.NewManager(serviceRepo, userRepo, appointmentRepo, d.Clock, opts...)

	notifier := ucNotification.NewNotifier(notificationRepo, d.Clock)

	effects := ucAppointment.Effects{
		Audit:    d.Audit,
		Events:   d.Events,
		Notifier: notifier,
		Clock:    d.Clock,
		Logger:   d.Logger,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentUseCases{
		Availability: ucAppointment.NewGetAvailability(calculator),
		Create:       ucAppointment.NewCreateAppointment(manager, effects),
		Cancel:       ucAppointment.NewCancelAppointment(manager, effects),
		Complete:     ucAppointment.NewCompleteAppointment(manager, appointmentRepo, effects),
		ListMine:     ucAppointment.NewListMyAppointments(appointmentRepo),
		Agenda:       ucAppointment.NewListAgenda(appointmentRepo),
	})

	serviceHandler := handlers.NewServiceHandler(
		ucCatalog.NewListServices(serviceRepo),
		ucCatalog.NewGetService(serviceRepo),
		ucCatalog.NewCreateService(serviceRepo, d.Audit, d.Clock),
		ucCatalog.NewUpdateService(serviceRepo, d.Audit, d.Clock),
	)

	notificationHandler := handlers.NewNotificationHandler(
		ucNotification.NewListNotifications(notificationRepo),
		ucNotification.NewMarkNotificationRead(notificationRepo, d.Clock),
	)

	professionalHandler := handlers.NewProfessionalHandler(
		ucProfessional.NewCreateProfile(professionalRepo, userRepo, serviceRepo, d.Audit, d.Clock),
		ucProfessional.NewUpdateProfile(professionalRepo, d.Audit, d.Clock),
		ucProfessional.NewGetMyProfile(professionalRepo),
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, d.Clock, validators.EmailDomainResolves)
	meHandler := handlers.NewMeHandler(userRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLogs)

	checks := []handlers.ReadyCheck{{
		Name:  "postgres",
		Check: func(ctx context.Context) error { return dbpkg.Ping(ctx, d.DB) },
	}}
	if d.Redis != nil {
		checks = append(checks, handlers.ReadyCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return d.Redis.Ping(ctx).Err() },
		})
	}
	healthHandler := handlers.NewHealthHandler(checks...)

	var rateLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if d.Redis != nil {
		rateLimit = middleware.RateLimit(
			middleware.NewRedisCounter(d.Redis),
			cfg.RateLimitPerMinute,
			time.Minute,
			d.Logger,
		)
	}

	// ======================================================
	// ROTAS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICAS
		// ------------------------------
		api.POST("/auth/register", rateLimit, authHandler.Register)
		api.POST("/auth/login", rateLimit, authHandler.Login)

		api.GET("/services", serviceHandler.List)
		api.GET("/services/:id", serviceHandler.Get)

		// ------------------------------
		// PRIVADAS
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret), rateLimit)
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListMine)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			staff := secured.Group("/")
			staff.Use(middleware.RequireRole(domain.RoleProfessional, domain.RoleAdmin))
			{
				staff.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
				staff.POST("/professionals", professionalHandler.Create)
			}

			professional := secured.Group("/me")
			professional.Use(middleware.RequireRole(domain.RoleProfessional))
			{
				professional.GET("/agenda", appointmentHandler.Agenda)
				professional.GET("/notifications", notificationHandler.List)
				professional.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
			}

			secured.GET("/professionals/me", middleware.RequireRole(domain.RoleProfessional), professionalHandler.Me)

			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(domain.RoleAdmin))
			{
				admin.POST("/services", serviceHandler.Create)
				admin.PATCH("/services/:id", serviceHandler.Update)
				admin.PUT("/professionals/:id", professionalHandler.Update)
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}

	var workers Workers
	if cfg.AutoCompleteInterval > 0 {
		workers.AutoCompleter = ucAppointment.NewAutoCompleter(manager, appointmentRepo, effects, ucAppointment.AutoCompleterConfig{
			Interval: cfg.AutoCompleteInterval,
		})
	}
	if cfg.ReminderInterval > 0 {
		workers.Reminder = ucAppointment.NewReminder(appointmentRepo, notifier, effects, ucAppointment.ReminderConfig{
			Interval: cfg.ReminderInterval,
			LeadTime: cfg.ReminderLeadTime,
		})
	}
	return workers
}
