package repository

import (
	"context"
	"sync"

	"shui/internal/domain"
)

// MemoryMessageRepository guarda los mensajes en memoria en orden de insercion.
type MemoryMessageRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]domain.Message
}

func NewMemoryMessageRepository() *MemoryMessageRepository {
	return &MemoryMessageRepository{items: make(map[string]domain.Message)}
}

func (r *MemoryMessageRepository) Create(_ context.Context, message domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[message.ID]; !ok {
		r.order = append(r.order, message.ID)
	}
	r.items[message.ID] = message
	return nil
}

func (r *MemoryMessageRepository) List(_ context.Context) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Message, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *MemoryMessageRepository) GetByID(_ context.Context, id string) (domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msg, ok := r.items[id]
	if !ok {
		return domain.Message{}, ErrNotFound
	}
	return msg, nil
}

func (r *MemoryMessageRepository) UpdateText(_ context.Context, id, text string) (domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg, ok := r.items[id]
	if !ok {
		return domain.Message{}, ErrNotFound
	}
	msg.Text = text
	r.items[id] = msg
	return msg, nil
}
