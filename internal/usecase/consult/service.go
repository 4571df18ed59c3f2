package consult

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"expert-consult/internal/config"
	"expert-consult/internal/domain"
)

// ErrorPrefix starts every flattened failure shown to the user.
const ErrorPrefix = "エラーが発生しました: "

var ErrEmptyQuestion = errors.New("empty question")

type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

type CompletionRequest struct {
	Model       string
	Temperature float32
	Messages    []domain.Message
}

type Request struct {
	Persona domain.Persona
	Text    string
}

type Answer struct {
	Persona domain.Persona
	Text    string
}

// CompletionError reports a failed call to the completion service.
type CompletionError struct {
	Persona domain.Persona
	Err     error
}

func (e *CompletionError) Error() string {
	return e.Err.Error()
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

type Service struct {
	client   Client
	settings config.Settings
	log      *zap.Logger
}

func NewService(client Client, settings config.Settings, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		client:   client,
		settings: settings,
		log:      log,
	}
}

// Validate rejects questions that are blank once whitespace is stripped.
// Surfaces call it before Consult; Consult itself forwards any text.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

func (s *Service) Consult(ctx context.Context, req Request) (Answer, error) {
	resp, err := s.client.Complete(ctx, CompletionRequest{
		Model:       s.settings.Model,
		Temperature: s.settings.Temperature,
		Messages:    domain.Exchange(req.Persona, req.Text),
	})
	if err != nil {
		s.log.Warn("completion failed",
			zap.String("persona", req.Persona.Command()),
			zap.String("model", s.settings.Model),
			zap.Error(err))
		return Answer{}, &CompletionError{Persona: req.Persona, Err: err}
	}

	s.log.Debug("completion done",
		zap.String("persona", req.Persona.Command()),
		zap.Int("question_len", len(req.Text)),
		zap.Int("answer_len", len(resp)))
	return Answer{Persona: req.Persona, Text: resp}, nil
}

// Answer returns the model's text, or the failure flattened for display.
func (s *Service) Answer(ctx context.Context, persona domain.Persona, text string) string {
	ans, err := s.Consult(ctx, Request{Persona: persona, Text: text})
	if err != nil {
		return DisplayError(err)
	}
	return ans.Text
}

func DisplayError(err error) string {
	return ErrorPrefix + err.Error()
}
