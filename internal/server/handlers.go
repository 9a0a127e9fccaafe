package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-fit/internal/types"
)

// ScoreRequest is the body of POST /v1/score.
type ScoreRequest struct {
	ResumeText     string `json:"resume_text" validate:"required,min=1"`
	JobDescription string `json:"job_description" validate:"required,min=1"`
}

// ScoreResponse carries the prediction plus the predictor's current state.
type ScoreResponse struct {
	Prediction types.FitPrediction `json:"prediction"`
	State      string              `json:"state"`
}

// ExtractRequest is the body of POST /v1/extract.
type ExtractRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// ExtractResponse lists the skills found in a single document.
type ExtractResponse struct {
	Skills   []types.ExtractedSkill `json:"skills"`
	Degraded bool                   `json:"degraded"`
}

// ReloadRequest optionally overrides the artifact path the server was
// started with. An empty body reloads the configured path.
type ReloadRequest struct {
	ArtifactPath string `json:"artifact_path"`
}

// ReloadResponse reports the state after a reload attempt.
type ReloadResponse struct {
	State string `json:"state"`
	Model string `json:"model,omitempty"`
}

// HealthResponse reports serving state and, when an artifact is loaded,
// its metadata.
type HealthResponse struct {
	Status     string `json:"status"`
	State      string `json:"state"`
	ArtifactID string `json:"artifact_id,omitempty"`
	Model      string `json:"model,omitempty"`
	TrainedAt  string `json:"trained_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	pred := s.pred.Score(r.Context(), req.ResumeText, req.JobDescription)
	s.writeJSON(w, http.StatusOK, ScoreResponse{
		Prediction: pred,
		State:      s.pred.State().String(),
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	res := s.ext.Extract(r.Context(), req.Text)
	skills := res.Skills
	if skills == nil {
		skills = []types.ExtractedSkill{}
	}
	s.writeJSON(w, http.StatusOK, ExtractResponse{
		Skills:   skills,
		Degraded: res.Degraded,
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	var req ReloadRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
			s.errorJSON(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
			return
		}
	}
	path := req.ArtifactPath
	if path == "" {
		path = s.artifactPath
	}
	if path == "" {
		s.errorJSON(w, http.StatusBadRequest, "no artifact path configured")
		return
	}

	if err := s.pred.Load(path); err != nil {
		s.log.Warn("artifact reload failed", zap.String("path", path), zap.Error(err))
		s.errorJSON(w, http.StatusUnprocessableEntity, fmt.Sprintf("reload failed: %v", err))
		return
	}

	resp := ReloadResponse{State: s.pred.State().String()}
	if meta, ok := s.pred.Metadata(); ok {
		resp.Model = meta.Model
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		State:  s.pred.State().String(),
	}
	if meta, ok := s.pred.Metadata(); ok {
		resp.ArtifactID = meta.ID
		resp.Model = meta.Model
		resp.TrainedAt = meta.TrainedAt.Format(time.RFC3339)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. It writes the error response itself and reports whether
// the handler should continue.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorJSON(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			s.errorJSON(w, http.StatusBadRequest, "validation failed: "+strings.Join(fields, ", "))
		} else {
			s.errorJSON(w, http.StatusBadRequest, fmt.Sprintf("validation failed: %v", err))
		}
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorJSON(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
