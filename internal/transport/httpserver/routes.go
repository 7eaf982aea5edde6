package httpserver

import (
	"net/http"
	"time"

	"baby-tracker-go/internal/config"
	"baby-tracker-go/internal/metrics"
	"baby-tracker-go/internal/transport/httpserver/handler"
	authmw "baby-tracker-go/internal/transport/httpserver/middleware"
	"baby-tracker-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const requestTimeout = 30 * time.Second

// NewRouter wires the REST API. Streaming routes (chat, live, mcp) are kept
// out of the request timeout. mcp may be nil when the MCP endpoint is disabled.
func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, mcp http.Handler, m *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))
	r.Use(authmw.Metrics(m))

	if cfg.MetricsEnabled {
		r.Handle("/metrics", m.Handler())
	}

	access := authmw.HouseholdAccess(handlers.Access, log)
	timeout := chimw.Timeout(requestTimeout)

	r.Route("/api", func(r chi.Router) {
		r.With(timeout).Get("/health", handlers.Health)

		auth := authmw.NewSupabaseAuth(cfg.Supabase, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/chat", handlers.StreamChat)
			if mcp != nil {
				r.Handle("/mcp", mcp)
			}

			r.Group(func(r chi.Router) {
				r.Use(timeout)

				r.Get("/auth/me", handlers.AuthMe)
				r.Patch("/users/me", handlers.UpdateMe)

				r.Get("/households", handlers.ListHouseholds)
				r.Post("/households", handlers.CreateHousehold)
				r.Post("/households/join", handlers.JoinHousehold)
			})

			r.Route("/households/{householdID}", func(r chi.Router) {
				r.Use(access)
				r.Use(timeout)

				r.Get("/", handlers.GetHousehold)
				r.Patch("/", handlers.UpdateHousehold)
				r.Delete("/", handlers.DeleteHousehold)
				r.Post("/invite-code", handlers.RegenerateInviteCode)
				r.Post("/leave", handlers.LeaveHousehold)

				r.Get("/members", handlers.ListMembers)
				r.Patch("/members/{userID}", handlers.UpdateMember)
				r.Delete("/members/{userID}", handlers.RemoveMember)

				r.Get("/children", handlers.ListChildren)
				r.Post("/children", handlers.CreateChild)
			})

			r.Route("/children/{childID}", func(r chi.Router) {
				r.Use(access)

				if cfg.LiveUpdatesEnabled {
					r.Get("/live", handlers.Live)
				}

				r.Group(func(r chi.Router) {
					r.Use(timeout)
					childRoutes(r, handlers)
				})
			})
		})
	})

	return r
}

func childRoutes(r chi.Router, h *handler.Handlers) {
	r.Get("/", h.GetChild)
	r.Patch("/", h.UpdateChild)
	r.Delete("/", h.DeleteChild)

	r.Route("/sleep", func(r chi.Router) {
		r.Get("/", h.ListSleep)
		r.Post("/", h.LogSleep)
		r.Get("/active", h.ActiveSleep)
		r.Post("/start", h.StartSleep)
		r.Post("/end", h.EndSleep)
		r.Patch("/{id}", h.UpdateSleep)
		r.Delete("/{id}", h.DeleteSleep)
	})

	r.Route("/feedings", func(r chi.Router) {
		r.Get("/", h.ListFeedings)
		r.Post("/bottle", h.LogBottle)
		r.Post("/solids", h.LogSolids)
		r.Post("/breast", h.LogBreastfeeding)
		r.Get("/breast/active", h.ActiveBreastfeeding)
		r.Post("/breast/start", h.StartBreastfeeding)
		r.Post("/breast/switch", h.SwitchBreastSide)
		r.Post("/breast/end", h.EndBreastfeeding)
		r.Patch("/{id}", h.UpdateFeeding)
		r.Delete("/{id}", h.DeleteFeeding)
	})

	r.Route("/diapers", func(r chi.Router) {
		r.Get("/", h.ListDiapers)
		r.Post("/", h.LogDiaper)
		r.Patch("/{id}", h.UpdateDiaper)
		r.Delete("/{id}", h.DeleteDiaper)
	})

	r.Route("/pumping", func(r chi.Router) {
		r.Get("/", h.ListPumping)
		r.Post("/", h.LogPumping)
		r.Get("/active", h.ActivePumping)
		r.Post("/start", h.StartPumping)
		r.Post("/end", h.EndPumping)
		r.Patch("/{id}", h.UpdatePumping)
		r.Delete("/{id}", h.DeletePumping)
	})

	r.Route("/medicines", func(r chi.Router) {
		r.Get("/", h.ListMedicines)
		r.Post("/", h.CreateMedicine)
		r.Patch("/{id}", h.UpdateMedicine)
		r.Delete("/{id}", h.DeactivateMedicine)
		r.Get("/doses", h.ListMedicineDoses)
		r.Post("/doses", h.LogMedicineDose)
		r.Delete("/doses/{id}", h.DeleteMedicineDose)
	})

	r.Route("/growth", func(r chi.Router) {
		r.Get("/", h.ListGrowth)
		r.Post("/", h.LogGrowth)
		r.Patch("/{id}", h.UpdateGrowth)
		r.Delete("/{id}", h.DeleteGrowth)
	})

	r.Route("/temperatures", func(r chi.Router) {
		r.Get("/", h.ListTemperatures)
		r.Post("/", h.LogTemperature)
		r.Patch("/{id}", h.UpdateTemperature)
		r.Delete("/{id}", h.DeleteTemperature)
	})

	r.Route("/activities", func(r chi.Router) {
		r.Get("/", h.ListActivities)
		r.Post("/", h.LogActivity)
		r.Get("/active", h.ActiveActivities)
		r.Post("/start", h.StartActivity)
		r.Post("/end", h.EndActivity)
		r.Patch("/{id}", h.UpdateActivity)
		r.Delete("/{id}", h.DeleteActivity)
	})

	r.Route("/timeline", func(r chi.Router) {
		r.Get("/list", h.TimelineList)
		r.Get("/day", h.TimelineDay)
		r.Get("/week", h.TimelineWeek)
		r.Get("/summary", h.TimelineSummary)
		r.Get("/last", h.LastActivity)
	})
}
