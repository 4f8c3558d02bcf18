package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/solera-dev/back-office/backend/internal/config"
	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/solera-dev/back-office/backend/internal/repository"
	"github.com/solera-dev/back-office/backend/internal/scheduler"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	planner     *scheduler.Planner
	guard       *scheduler.OverlapGuard
	coordinator *scheduler.Coordinator

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	resolver := scheduler.NewResolver(repo)
	guard := scheduler.NewOverlapGuard(repo)

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		planner:     scheduler.NewPlanner(repo, resolver, guard),
		guard:       guard,
		coordinator: scheduler.NewCoordinator(repo),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// authentication
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below requires a valid session
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
			r.Route("/update-email", func(r chi.Router) {
				r.Post("/require", h.RequireUpdateEmail)
				r.Post("/confirm", h.ConfirmUpdateEmail)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Delete("/", h.DeleteUser)
				r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/locations", func(r chi.Router) {
			r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Post("/", h.CreateLocation)
			r.Get("/", h.GetAllLocations)
			r.With(h.location).Get("/{id}", h.GetLocation)
		})

		r.Route("/roles", func(r chi.Router) {
			r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Post("/", h.CreateRole)
			r.Get("/", h.GetAllRoles)
			r.With(h.role).Get("/{id}", h.GetRole)
		})

		r.Route("/shift-templates", func(r chi.Router) {
			r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Post("/", h.CreateShiftTemplate)
			r.Get("/", h.GetShiftTemplates)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shiftTemplate)
				r.Get("/", h.GetShiftTemplate)
				r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Patch("/", h.UpdateShiftTemplate)
				r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Delete("/", h.DeleteShiftTemplate)
			})
		})

		r.Route("/availabilities", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.CreateAvailability)
			r.Get("/", h.GetAvailabilities)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.availability)
				r.Get("/", h.GetAvailability)
				r.Patch("/", h.UpdateAvailability)
				r.Delete("/", h.DeleteAvailability)
			})
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Use(h.myInfo)
			r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Post("/", h.CreateShift)
			r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Post("/generate", h.GenerateShifts)
			r.Get("/", h.GetShifts)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.shift)
				r.Get("/", h.GetShift)
				r.Patch("/", h.UpdateShift)
				r.With(h.RequiredLevel([]domain.AccessLevel{domain.LevelAdmin})).Delete("/", h.DeleteShift)
			})
		})

		r.Route("/shift-swaps", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Post("/", h.ProposeShiftSwap)
			r.Get("/", h.GetShiftSwaps)
			r.Get("/{id}", h.GetShiftSwap)
			r.Put("/{id}/approve", h.ApproveShiftSwap)
			r.Put("/{id}/reject", h.RejectShiftSwap)
		})
	})
}
