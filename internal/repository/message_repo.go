package repository

import (
	"context"
	"errors"
	"time"

	"shui/internal/domain"
)

// ErrNotFound se devuelve cuando no existe un mensaje con el id pedido.
var ErrNotFound = errors.New("message not found")

// timestampLayout replica el formato ISO-8601 con milisegundos que se guarda en los backends de texto.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// MessageRepository expone las primitivas del almacen: put, scan, get y update.
type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) error
	List(ctx context.Context) ([]domain.Message, error)
	GetByID(ctx context.Context, id string) (domain.Message, error)
	UpdateText(ctx context.Context, id, text string) (domain.Message, error)
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
