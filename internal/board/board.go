package board

import (
	"context"

	"go.uber.org/zap"

	"shui/internal/domain"
)

// API es lo que la vista necesita del servidor; *client.Client lo cumple.
type API interface {
	GetMessages(ctx context.Context) ([]domain.Message, error)
	CreateMessage(ctx context.Context, username, text string) (domain.Message, error)
	UpdateMessage(ctx context.Context, id, text string) (domain.Message, error)
	GetMessagesByUser(ctx context.Context, username string) ([]domain.Message, error)
}

// Board conecta el estado de la vista con la API. Cada accion hace como mucho una
// llamada de red (mas el refresco posterior) y no cancela ni reintenta nada.
type Board struct {
	api    API
	logger *zap.Logger
	state  State
}

func New(api API, logger *zap.Logger) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Board{api: api, logger: logger, state: NewState()}
}

func (b *Board) State() State {
	return b.state
}

// Refresh pide la lista completa.
func (b *Board) Refresh(ctx context.Context) {
	msgs, err := b.api.GetMessages(ctx)
	if err != nil {
		b.logger.Warn("fetch messages failed", zap.Error(err))
		b.state = b.state.LoadFailed()
		return
	}
	b.state = b.state.Loaded(msgs)
}

// Submit publica un mensaje nuevo. Con algun campo vacio no hace nada.
func (b *Board) Submit(ctx context.Context, username, text string) {
	b.state = b.state.SetDraft(username, text)
	if !b.state.CanSubmit() {
		return
	}
	if _, err := b.api.CreateMessage(ctx, b.state.DraftUsername, b.state.DraftText); err != nil {
		b.logger.Warn("create message failed", zap.Error(err))
		b.state = b.state.CreateFailed()
		return
	}
	b.state = b.state.Created()
	b.Refresh(ctx)
}

// StartEdit entra en modo edicion para el mensaje mostrado con ese id.
func (b *Board) StartEdit(id string) bool {
	for _, msg := range b.state.Messages {
		if msg.ID == id {
			b.state = b.state.StartEdit(msg)
			return true
		}
	}
	return false
}

func (b *Board) SetEditText(text string) {
	b.state = b.state.SetEditText(text)
}

func (b *Board) CancelEdit() {
	b.state = b.state.CancelEdit()
}

// SaveEdit envia la edicion en curso y refresca la lista.
func (b *Board) SaveEdit(ctx context.Context) {
	if b.state.EditID == "" {
		return
	}
	if _, err := b.api.UpdateMessage(ctx, b.state.EditID, b.state.EditText); err != nil {
		b.logger.Warn("update message failed", zap.Error(err), zap.String("id", b.state.EditID))
		b.state = b.state.UpdateFailed()
		return
	}
	b.state = b.state.Updated()
	b.Refresh(ctx)
}

// Search filtra por usuario; un termino vacio equivale a mostrar todo.
func (b *Board) Search(ctx context.Context, term string) {
	b.state = b.state.SetSearch(term)
	if term == "" {
		b.Refresh(ctx)
		return
	}
	msgs, err := b.api.GetMessagesByUser(ctx, term)
	if err != nil {
		b.logger.Warn("search failed", zap.Error(err), zap.String("username", term))
		b.state = b.state.SearchFailed()
		return
	}
	b.state = b.state.SearchResults(msgs)
}

func (b *Board) ToggleSort() {
	b.state = b.state.ToggleSort()
}
