package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thenoetrevino/tally/internal/auth"
	"github.com/thenoetrevino/tally/internal/models"
	projectservice "github.com/thenoetrevino/tally/internal/services/project"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// ============================================================================
// AUTH
// ============================================================================

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	_, token, err := s.app.AuthService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	_, token, err := s.app.AuthService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

// ============================================================================
// PROJECTS
// ============================================================================

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	page, err := s.pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.app.ProjectService.ListByOwner(r.Context(), chi.URLParam(r, "username"), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := s.app.ProjectService.CreateProject(r.Context(), auth.PrincipalFromContext(r.Context()),
		projectservice.CreateProjectRequest{Title: req.Title, Description: req.Description})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req UpdateProjectRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := s.app.ProjectService.UpdateProject(r.Context(), auth.PrincipalFromContext(r.Context()),
		projectservice.UpdateProjectRequest{ID: req.ID, Title: req.Title, Description: req.Description})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.app.ProjectService.DeleteProject(r.Context(), auth.PrincipalFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ============================================================================
// TASKS
// ============================================================================

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(chi.URLParam(r, "projectId"), "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := s.pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := s.app.TaskService.ListByProject(r.Context(), projectID, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := s.app.TaskService.CreateTask(r.Context(), auth.PrincipalFromContext(r.Context()),
		taskservice.CreateTaskRequest{
			ProjectID:   req.ProjectID,
			Title:       req.Title,
			Description: req.Description,
			Deadline:    req.Deadline,
			Completed:   boolValue(req.Completed),
		})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := s.app.TaskService.UpdateTask(r.Context(), auth.PrincipalFromContext(r.Context()),
		taskservice.UpdateTaskRequest{
			ID:          req.ID,
			Title:       req.Title,
			Description: req.Description,
			Deadline:    req.Deadline,
			Completed:   boolValue(req.Completed),
		})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.app.TaskService.DeleteTask(r.Context(), auth.PrincipalFromContext(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ============================================================================
// ANALYTICS
// ============================================================================

func (s *Server) handleTotalTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(chi.URLParam(r, "projectId"), "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	total, err := s.app.AnalyticsService.TotalTasks(r.Context(), projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"totalTasks": total})
}

// handleCompletedTasks answers under the "totalTasks" key, which existing clients read
func (s *Server) handleCompletedTasks(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(chi.URLParam(r, "projectId"), "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	completed, err := s.app.AnalyticsService.CompletedTasks(r.Context(), projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"totalTasks": completed})
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(chi.URLParam(r, "projectId"), "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	progression, err := s.app.AnalyticsService.Progression(r.Context(), projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]models.Ratio{"percentageProgression": models.Ratio(progression)})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(chi.URLParam(r, "projectId"), "projectId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	summary, err := s.app.AnalyticsService.Summary(r.Context(), projectID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// pageRequest reads page/size query parameters, defaulting to page 0 of the configured size
func (s *Server) pageRequest(r *http.Request) (models.PageRequest, error) {
	size, err := queryInt(r, "size", s.pagination.DefaultSize)
	if err != nil {
		return models.PageRequest{}, err
	}
	index, err := queryInt(r, "page", 0)
	if err != nil {
		return models.PageRequest{}, err
	}
	return models.PageRequest{Size: size, Index: index}, nil
}
