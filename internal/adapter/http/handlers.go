package http

import (
	"net/http"
	"strconv"

	"github.com/unikill066/resumeforge/internal/port/a2a"
	"github.com/unikill066/resumeforge/internal/service"
)

// Handlers bundles the HTTP handlers and their service dependencies.
type Handlers struct {
	crews   *service.CrewService
	resumes *service.ResumeService
	baseURL string
	health  func() map[string]string
}

// NewHandlers creates the handler set. health may be nil.
func NewHandlers(crews *service.CrewService, resumes *service.ResumeService, baseURL string, health func() map[string]string) *Handlers {
	return &Handlers{crews: crews, resumes: resumes, baseURL: baseURL, health: health}
}

type kickoffRequest struct {
	Inputs map[string]string `json:"inputs"`
	Wait   bool              `json:"wait,omitempty"`
}

type kickoffResponse struct {
	RunID string `json:"run_id"`
}

// Kickoff starts a crew run. By default the run executes in the
// background and the run ID is returned immediately; wait=true blocks
// until the run finishes and returns it whole.
func (h *Handlers) Kickoff(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[kickoffRequest](w, r)
	if !ok {
		return
	}
	if req.Inputs == nil {
		req.Inputs = map[string]string{}
	}

	if req.Wait {
		run, err := h.crews.Kickoff(r.Context(), req.Inputs)
		if err != nil {
			writeDomainError(w, err, "run not found")
			return
		}
		writeJSON(w, http.StatusOK, run)
		return
	}

	id := h.crews.StartKickoff(req.Inputs)
	writeJSON(w, http.StatusAccepted, kickoffResponse{RunID: id})
}

// GetRun returns one tracked run.
func (h *Handlers) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.crews.GetRun(urlParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// ListRuns returns all tracked runs, newest first.
func (h *Handlers) ListRuns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.crews.ListRuns())
}

// ListAgents returns the crew's agent descriptors.
func (h *Handlers) ListAgents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.crews.Agents())
}

// ListTasks returns the crew's task descriptors.
func (h *Handlers) ListTasks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.crews.Tasks())
}

// ListCapabilities returns the available tool capability names.
func (h *Handlers) ListCapabilities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"capabilities": h.crews.Capabilities()})
}

type saveResumeRequest struct {
	UserID   string `json:"user_id"`
	Content  string `json:"content"`
	Filename string `json:"filename,omitempty"`
}

// SaveResume stores a resume for a user.
func (h *Handlers) SaveResume(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[saveResumeRequest](w, r)
	if !ok {
		return
	}

	rec, err := h.resumes.Save(r.Context(), req.UserID, []byte(req.Content), req.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// ListResumes returns all stored resumes.
func (h *Handlers) ListResumes(w http.ResponseWriter, r *http.Request) {
	records, err := h.resumes.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "resumes not found")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// ResumeHistory returns the most recent resumes for a user.
func (h *Handlers) ResumeHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.resumes.History(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// DeleteResume removes a stored resume.
func (h *Handlers) DeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := h.resumes.Delete(r.Context(), urlParam(r, "id")); err != nil {
		writeDomainError(w, err, "resume not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AgentCard serves the A2A discovery document.
func (h *Handlers) AgentCard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a2a.BuildAgentCard(h.baseURL))
}

// Health reports component health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	components := map[string]string{"status": "ok"}
	if h.health != nil {
		components = h.health()
	}
	status := http.StatusOK
	for _, v := range components {
		if v != "ok" && v != "closed" {
			status = http.StatusServiceUnavailable
			break
		}
	}
	writeJSON(w, status, components)
}
