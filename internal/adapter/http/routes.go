package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
// wsHandler may be nil to disable the event stream endpoint.
func MountRoutes(r chi.Router, h *Handlers, apiKeyHash string, wsHandler http.HandlerFunc) {
	r.Get("/healthz", h.Health)
	r.Get("/.well-known/agent.json", h.AgentCard)

	if wsHandler != nil {
		r.Get("/ws", wsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKey(apiKeyHash))

		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Crew
		r.Post("/kickoff", h.Kickoff)
		r.Get("/agents", h.ListAgents)
		r.Get("/tasks", h.ListTasks)
		r.Get("/capabilities", h.ListCapabilities)

		// Runs
		r.Get("/runs", h.ListRuns)
		r.Get("/runs/{id}", h.GetRun)

		// Resumes
		r.Post("/resumes", h.SaveResume)
		r.Get("/resumes", h.ListResumes)
		r.Get("/resumes/history", h.ResumeHistory)
		r.Delete("/resumes/{id}", h.DeleteResume)
	})
}
