package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"shui/internal/domain"
	"shui/internal/repository"
)

var (
	ErrMessageServiceNotConfigured = errors.New("message service not configured")
	ErrNotFound                    = errors.New("message not found")
)

// ValidationError indica que falta un campo obligatorio en la entrada.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// StoreError envuelve cualquier fallo del almacen. El mensaje del error original se
// expone tal cual al llamante.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// MessageService implementa las cuatro operaciones del tablon sobre un MessageRepository.
type MessageService struct {
	logger *zap.Logger
	repo   repository.MessageRepository
	now    func() time.Time
	newID  func() string
}

func NewMessageService(logger *zap.Logger, repo repository.MessageRepository) *MessageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageService{
		logger: logger,
		repo:   repo,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

func (s *MessageService) configured() bool {
	return s != nil && s.repo != nil
}

// Create valida y persiste un mensaje nuevo con id y createdAt generados.
func (s *MessageService) Create(ctx context.Context, username, text string) (domain.Message, error) {
	if !s.configured() {
		return domain.Message{}, ErrMessageServiceNotConfigured
	}

	username = strings.TrimSpace(username)
	text = strings.TrimSpace(text)
	if username == "" || text == "" {
		return domain.Message{}, &ValidationError{msg: "username and text are required"}
	}

	msg := domain.Message{
		ID:        s.newID(),
		Username:  username,
		Text:      text,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return domain.Message{}, &StoreError{Op: "create", Err: err}
	}

	s.logger.Info("message saved", zap.String("id", msg.ID), zap.String("username", msg.Username))
	return msg, nil
}

// ListAll devuelve todos los mensajes, del mas nuevo al mas antiguo.
func (s *MessageService) ListAll(ctx context.Context) ([]domain.Message, error) {
	if !s.configured() {
		return nil, ErrMessageServiceNotConfigured
	}

	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	domain.SortByCreatedAt(msgs, true)

	s.logger.Info("messages fetched", zap.Int("count", len(msgs)))
	return msgs, nil
}

// ListByUser filtra por username exacto. Sin coincidencias devuelve una lista vacia, no un error.
func (s *MessageService) ListByUser(ctx context.Context, username string) ([]domain.Message, error) {
	if !s.configured() {
		return nil, ErrMessageServiceNotConfigured
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &ValidationError{msg: "username is required"}
	}

	msgs, err := s.repo.List(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	filtered := lo.Filter(msgs, func(m domain.Message, _ int) bool {
		return m.Username == username
	})
	domain.SortByCreatedAt(filtered, true)

	s.logger.Info("messages fetched for user", zap.String("username", username), zap.Int("count", len(filtered)))
	return filtered, nil
}

// Update cambia solo el texto de un mensaje existente. Gana la ultima escritura.
func (s *MessageService) Update(ctx context.Context, id, text string) (domain.Message, error) {
	if !s.configured() {
		return domain.Message{}, ErrMessageServiceNotConfigured
	}

	id = strings.TrimSpace(id)
	text = strings.TrimSpace(text)
	if id == "" || text == "" {
		return domain.Message{}, &ValidationError{msg: "id and text are required"}
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Message{}, ErrNotFound
		}
		return domain.Message{}, &StoreError{Op: "get", Err: err}
	}

	updated, err := s.repo.UpdateText(ctx, id, text)
	if err != nil {
		// Solo pasa si el mensaje desaparece entre el get y el update.
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Message{}, ErrNotFound
		}
		return domain.Message{}, &StoreError{Op: "update", Err: err}
	}

	s.logger.Info("message updated", zap.String("id", updated.ID))
	return updated, nil
}
