package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/config"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/domain"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/replication"
	"github.com/sysu-ecnc-dev/shift-calendar/backend/internal/repository"
)

type Handler struct {
	validate          *validator.Validate
	config            *config.Config
	repository        *repository.Repository
	translator        ut.Translator
	notifyChannel     *amqp.Channel
	redisClient       *redis.Client
	replicationEngine *replication.Engine

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, notifyCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:          validate,
		config:            cfg,
		repository:        repo,
		translator:        trans,
		notifyChannel:     notifyCh,
		redisClient:       rdb,
		replicationEngine: replication.NewEngine(cfg.Replication.CheckWeekPasteConflicts),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 登录由统一认证服务负责，以下 API 只校验它签发的令牌
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.GetAllEmployees) // 所有人都可以查看员工列表
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.employeeInfo)
				r.Get("/", h.GetEmployeeInfo)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Get("/", h.GetShiftsByDateRange)
			r.With(h.RequiredRole([]domain.Role{domain.RoleScheduler})).Post("/", h.CreateShift)
			r.With(h.RequiredRole([]domain.Role{domain.RoleScheduler})).Post("/paste", h.PasteShift)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftInfo)
				r.With(h.RequiredRole([]domain.Role{domain.RoleScheduler})).Patch("/", h.UpdateShift)
				r.With(h.RequiredRole([]domain.Role{domain.RoleScheduler})).Delete("/", h.DeleteShift)
			})
		})

		// 复制粘贴的模板（剪贴板）
		r.Route("/clipboard", func(r chi.Router) {
			r.Use(h.RequiredRole([]domain.Role{domain.RoleScheduler}))
			r.Post("/shift", h.CopyShift)
			r.Post("/week", h.CopyWeek)
			r.Delete("/", h.ClearClipboard)
		})

		r.With(h.RequiredRole([]domain.Role{domain.RoleScheduler})).Post("/weeks/paste", h.PasteWeek)
	})
}
