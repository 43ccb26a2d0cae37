package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"voxca/internal/board"
	"voxca/internal/core"
	"voxca/internal/gallery"
	"voxca/internal/jobconf"
	"voxca/internal/metrics"
	"voxca/internal/palette"
	"voxca/internal/runner"
	"voxca/internal/scene"
)

const maxFormBytes = 1 << 20

func (s *Server) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) error(w http.ResponseWriter, code int, kind, msg string) {
	s.json(w, code, map[string]string{"error": kind, "message": msg})
}

// Health reports liveness.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.json(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Form describes the known configuration fields.
func (s *Server) Form(w http.ResponseWriter, r *http.Request) {
	s.json(w, http.StatusOK, map[string]any{"groups": core.KnownParameters()})
}

// SubmitJob enqueues a url-encoded form. Every field with a non-empty name
// becomes a job field, in submission order.
func (s *Server) SubmitJob(w http.ResponseWriter, r *http.Request) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct != "application/x-www-form-urlencoded" {
		s.error(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/x-www-form-urlencoded")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes+1))
	if err != nil {
		s.error(w, http.StatusBadRequest, "bad_request", "failed to read body")
		return
	}
	if len(body) > maxFormBytes {
		s.error(w, http.StatusRequestEntityTooLarge, "too_large", "form exceeds 1 MiB")
		return
	}
	fields, err := parseOrderedForm(string(body))
	if err != nil {
		s.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	job := core.NewConfigJob(fields)
	if len(job.Fields) == 0 {
		s.error(w, http.StatusBadRequest, "bad_request", "no named fields submitted")
		return
	}
	pos, err := s.Queue.Enqueue(job)
	if errors.Is(err, runner.ErrClosed) {
		s.error(w, http.StatusServiceUnavailable, "closed", "the run loop is shutting down")
		return
	}
	if err != nil {
		s.error(w, http.StatusInternalServerError, "internal", "failed to enqueue job")
		return
	}
	s.json(w, http.StatusAccepted, map[string]any{"id": job.ID, "position": pos})
}

// parseOrderedForm decodes a url-encoded body without losing field order,
// which url.ParseQuery does.
func parseOrderedForm(body string) ([]core.Field, error) {
	var fields []core.Field
	for _, pair := range strings.Split(body, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			return nil, fmt.Errorf("invalid field name %q", k)
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q", key)
		}
		f := core.Field{Key: key, Value: value}
		if err := jobconf.ValidateField(f); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

type jobView struct {
	core.ConfigJob
	Summary []string `json:"summary"`
}

// ListJobs returns the loop state, the queue and the failed runs.
func (s *Server) ListJobs(w http.ResponseWriter, r *http.Request) {
	snap := s.Queue.Snapshot()
	queue := make([]jobView, len(snap.Queue))
	for i, j := range snap.Queue {
		queue[i] = jobView{ConfigJob: j, Summary: j.Summary()}
	}
	failures := snap.Failures
	if failures == nil {
		failures = []core.FailedRun{}
	}
	s.json(w, http.StatusOK, map[string]any{
		"state":    snap.State,
		"queue":    queue,
		"failures": failures,
		"results":  snap.Results,
	})
}

type resultView struct {
	core.ResultRecord
	Summary []string `json:"summary"`
}

// ListResults returns every archived run.
func (s *Server) ListResults(w http.ResponseWriter, r *http.Request) {
	records := s.Gallery.Records()
	items := make([]resultView, len(records))
	for i, rec := range records {
		items[i] = resultView{ResultRecord: rec, Summary: rec.Job.Summary()}
	}
	s.json(w, http.StatusOK, map[string]any{"items": items})
}

// GetResult returns one record with its parsed time log.
func (s *Server) GetResult(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.index(w, r)
	if !ok {
		return
	}
	rec, err := s.Gallery.Get(idx)
	if err != nil {
		s.artifactError(w, err)
		return
	}
	resp := map[string]any{"result": resultView{ResultRecord: rec, Summary: rec.Job.Summary()}}
	if timings, err := s.Gallery.Timings(idx); err == nil {
		resp["timings"] = timings
	} else {
		s.Log.Warn().Err(err).Int("index", idx).Msg("time log unavailable")
	}
	s.json(w, http.StatusOK, resp)
}

// GetBoard returns the decoded board of one result.
func (s *Server) GetBoard(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.index(w, r)
	if !ok {
		return
	}
	b, err := s.Gallery.Board(idx)
	if err != nil {
		s.artifactError(w, err)
		return
	}
	s.json(w, http.StatusOK, b)
}

// GetScene builds the voxel scene of one result and returns the rendered
// frame: every cube with its color, and the camera.
func (s *Server) GetScene(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.index(w, r)
	if !ok {
		return
	}
	rec := scene.NewRecorder()
	if err := s.Gallery.Select(idx, rec); err != nil {
		metrics.Renders.WithLabelValues(metrics.OutcomeError).Inc()
		s.Log.Error().Err(err).Int("index", idx).Msg("render failed")
		s.artifactError(w, err)
		return
	}
	metrics.Renders.WithLabelValues(metrics.OutcomeOK).Inc()
	frame, _ := rec.Last()
	s.json(w, http.StatusOK, frame)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 {
		s.error(w, http.StatusBadRequest, "bad_request", "index must be a non-negative integer")
		return 0, false
	}
	return idx, true
}

func (s *Server) artifactError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gallery.ErrNoSuchResult):
		s.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, fs.ErrNotExist):
		s.error(w, http.StatusNotFound, "artifact_missing", err.Error())
	case errors.Is(err, board.ErrMalformedHeader),
		errors.Is(err, board.ErrMalformedValue),
		errors.Is(err, board.ErrVolumeMismatch),
		errors.Is(err, scene.ErrIndexOutOfRange),
		errors.Is(err, palette.ErrOutOfRange):
		s.error(w, http.StatusUnprocessableEntity, "malformed_artifact", err.Error())
	default:
		s.error(w, http.StatusInternalServerError, "internal", err.Error())
	}
}
