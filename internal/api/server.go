package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/models"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/observability"
	"github.com/mwalker-tmd/AIE6-Golf-Agent/internal/tools"
)

const maxBodyBytes = 1 << 20

// Runner executes one query through the pipeline.
type Runner interface {
	Run(ctx context.Context, requestID, query string) (*models.PipelineState, error)
}

type Options struct {
	AllowedOrigins []string
	StaticDir      string // built frontend served at / when set
	MetricsEnabled bool
}

type Server struct {
	runner   Runner
	registry *tools.Registry
	opts     Options
}

func NewServer(runner Runner, registry *tools.Registry, opts Options) *Server {
	return &Server{runner: runner, registry: registry, opts: opts}
}

// Handler returns the full HTTP handler with request ids and CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return requestID(cors(s.opts.AllowedOrigins, mux))
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("POST /api/agent", s.handleAgent)
	mux.HandleFunc("GET /api/tools", s.handleTools)
	mux.HandleFunc("GET /api/log-level", handleGetLogLevel)
	mux.HandleFunc("POST /api/log-level", handleSetLogLevel)
	if s.opts.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	if s.opts.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(s.opts.StaticDir)))
	}
}

type agentRequest struct {
	Query string `json:"query"`
	Input string `json:"input"`
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	query, err := readQuery(w, r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.runner.Run(r.Context(), w.Header().Get(requestIDHeader), query)
	if err != nil {
		msg := err.Error()
		if st != nil && st.Error != "" {
			msg = st.Error
		}
		respondError(w, http.StatusInternalServerError, msg)
		return
	}
	if !st.Stage.Terminal() {
		respondError(w, http.StatusInternalServerError, "pipeline stopped at "+string(st.Stage))
		return
	}
	resp := ""
	if st.FinalResponse != nil {
		resp = *st.FinalResponse
	}
	respondJSON(w, http.StatusOK, map[string]any{"response": resp})
}

// readQuery accepts a JSON body or form field named query or input.
func readQuery(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return "", err
		}
		if q := r.FormValue("query"); q != "" {
			return q, nil
		}
		return r.FormValue("input"), nil
	default:
		var req agentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", errors.New("request body must be JSON with a query or input field")
		}
		if req.Query != "" {
			return req.Query, nil
		}
		return req.Input, nil
	}
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	type toolInfo struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		OnFailure   string `json:"on_failure"`
	}
	entries := s.registry.Entries()
	out := make([]toolInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, toolInfo{ID: string(e.ID), Description: e.Description, OnFailure: e.OnFailure.String()})
	}
	respondJSON(w, http.StatusOK, out)
}

func handleGetLogLevel(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"level": observability.LevelName()})
}

func handleSetLogLevel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Level string `json:"level"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be JSON with a level field")
		return
	}
	if err := observability.SetLevel(req.Level); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Log level set to " + strings.ToUpper(strings.TrimSpace(req.Level))})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"detail": msg})
}

const requestIDHeader = "X-Request-ID"

// requestID tags each request with an id and a request-scoped logger.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, id := observability.WithRequestID(r.Context(), r.Header.Get(requestIDHeader))
		w.Header().Set(requestIDHeader, id)
		zerolog.Ctx(ctx).Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cors allows the configured origins with credentials and any method or header.
func cors(allowed []string, next http.Handler) http.Handler {
	origins := make(map[string]bool, len(allowed))
	wildcard := false
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			wildcard = true
		}
		origins[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (wildcard || origins[origin]) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				if req := r.Header.Get("Access-Control-Request-Headers"); req != "" {
					h.Set("Access-Control-Allow-Headers", req)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
