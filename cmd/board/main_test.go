package main

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"shui/internal/board"
	"shui/internal/domain"
)

type stubAPI struct {
	messages []domain.Message
}

func (s *stubAPI) GetMessages(context.Context) ([]domain.Message, error) {
	return append([]domain.Message(nil), s.messages...), nil
}

func (s *stubAPI) CreateMessage(context.Context, string, string) (domain.Message, error) {
	return domain.Message{}, nil
}

func (s *stubAPI) UpdateMessage(context.Context, string, string) (domain.Message, error) {
	return domain.Message{}, nil
}

func (s *stubAPI) GetMessagesByUser(context.Context, string) ([]domain.Message, error) {
	return nil, nil
}

func newTestBoard() *board.Board {
	t0 := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	api := &stubAPI{messages: []domain.Message{
		{ID: "m1", Username: "ada", Text: "first", CreatedAt: t0},
		{ID: "m2", Username: "grace", Text: "second", CreatedAt: t0.Add(time.Minute)},
	}}
	b := board.New(api, zap.NewNop())
	b.Refresh(context.Background())
	return b
}

func TestEditMenu_EditAnotherMessage(t *testing.T) {
	b := newTestBoard()
	// Mas nuevos primero: fila 1 es m2, fila 2 es m1.
	b.StartEdit("m2")
	b.SetEditText("half written")

	reader := bufio.NewReader(strings.NewReader("4\n2\n"))
	editMenu(context.Background(), reader, b)

	s := b.State()
	if s.EditID != "m1" || s.EditText != "first" {
		t.Fatalf("expected m1 in edit mode with its own text, got id=%q text=%q", s.EditID, s.EditText)
	}
}

func TestPickForEdit_InvalidRow(t *testing.T) {
	b := newTestBoard()

	pickForEdit(bufio.NewReader(strings.NewReader("9\n")), b)
	if b.State().EditID != "" {
		t.Fatalf("expected no edit for out-of-range row, got %q", b.State().EditID)
	}
}
