package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"expert-consult/internal/domain"
	"expert-consult/internal/usecase/consult"
)

const (
	shutdownTimeout = 5 * time.Second
	maxAPIBodyBytes = 1 << 20
)

type Server struct {
	consult *consult.Service
	model   string
	log     *zap.Logger
}

func NewServer(svc *consult.Service, model string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		consult: svc,
		model:   model,
		log:     log,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /{$}", s.handleForm)
	mux.HandleFunc("POST /api/consult", s.handleAPI)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return withRequestLog(s.log, mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, newPageData(domain.Personas()[0], s.model))
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	persona, ok := domain.ParsePersona(r.PostFormValue("persona"))
	if !ok {
		http.Error(w, "unknown persona", http.StatusBadRequest)
		return
	}
	question := r.PostFormValue("question")

	data := newPageData(persona, s.model)
	data.Question = question

	if err := consult.Validate(question); err != nil {
		data.ValidationError = ValidationMessage
		s.render(w, http.StatusOK, data)
		return
	}

	view := &answerView{Label: persona.Label()}
	ans, err := s.consult.Consult(r.Context(), consult.Request{Persona: persona, Text: question})
	if err != nil {
		view.Text = consult.DisplayError(err)
		view.Failed = true
	} else if view.HTML, err = renderMarkdown(ans.Text); err != nil {
		s.log.Warn("render markdown", zap.Error(err))
		view.Text = ans.Text
	}
	data.Answer = view
	s.render(w, http.StatusOK, data)
}

type apiRequest struct {
	Persona  string `json:"persona"`
	Question string `json:"question"`
}

type apiResponse struct {
	Persona string `json:"persona,omitempty"`
	Answer  string `json:"answer,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	var req apiRequest
	body := http.MaxBytesReader(w, r.Body, maxAPIBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, apiResponse{Error: "request body too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "invalid json body"})
		return
	}

	persona, ok := domain.ParsePersona(req.Persona)
	if !ok {
		writeJSON(w, http.StatusBadRequest, apiResponse{Error: "unknown persona"})
		return
	}
	if err := consult.Validate(req.Question); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, apiResponse{Persona: persona.Label(), Error: ValidationMessage})
		return
	}

	ans, err := s.consult.Consult(r.Context(), consult.Request{Persona: persona, Text: req.Question})
	if err != nil {
		writeJSON(w, http.StatusBadGateway, apiResponse{Persona: persona.Label(), Error: consult.DisplayError(err)})
		return
	}
	writeJSON(w, http.StatusOK, apiResponse{Persona: ans.Persona.Label(), Answer: ans.Text})
}

func (s *Server) render(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.log.Error("render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
