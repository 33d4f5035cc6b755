package board

import (
	"strings"

	"shui/internal/domain"
)

// Mensajes del unico hueco de error de la vista.
const (
	ErrFetch  = "could not fetch messages"
	ErrCreate = "could not create message"
	ErrUpdate = "could not update message"
	ErrSearch = "an error occurred while searching"
	NoResults = "no messages found for this user"
)

// State es el estado completo de la vista. Las transiciones son puras: reciben un
// State por valor y devuelven el siguiente sin tocar el anterior.
type State struct {
	Messages      []domain.Message
	DraftUsername string
	DraftText     string
	EditID        string
	EditText      string
	Search        string
	NewestFirst   bool
	Error         string
}

// NewState devuelve la vista inicial: lista vacia, mas nuevos primero.
func NewState() State {
	return State{Messages: []domain.Message{}, NewestFirst: true}
}

func (s State) sorted(msgs []domain.Message) []domain.Message {
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	domain.SortByCreatedAt(out, s.NewestFirst)
	return out
}

// Loaded reemplaza la lista con la lista completa del servidor y limpia el error.
// La busqueda activa se olvida: lo que se muestra ya no esta filtrado.
func (s State) Loaded(msgs []domain.Message) State {
	s.Messages = s.sorted(msgs)
	s.Search = ""
	s.Error = ""
	return s
}

func (s State) LoadFailed() State {
	s.Error = ErrFetch
	return s
}

func (s State) SetDraft(username, text string) State {
	s.DraftUsername = username
	s.DraftText = text
	return s
}

// CanSubmit replica la validacion del servidor: ambos campos son obligatorios.
func (s State) CanSubmit() bool {
	return strings.TrimSpace(s.DraftUsername) != "" && strings.TrimSpace(s.DraftText) != ""
}

// Created vacia el formulario; quien llama vuelve a pedir la lista.
func (s State) Created() State {
	s.DraftUsername = ""
	s.DraftText = ""
	return s
}

func (s State) CreateFailed() State {
	s.Error = ErrCreate
	return s
}

// StartEdit pone un mensaje en modo edicion. Una edicion previa en curso se descarta sin avisar.
func (s State) StartEdit(msg domain.Message) State {
	s.EditID = msg.ID
	s.EditText = msg.Text
	return s
}

func (s State) SetEditText(text string) State {
	s.EditText = text
	return s
}

// CancelEdit descarta la edicion local sin llamar al servidor.
func (s State) CancelEdit() State {
	s.EditID = ""
	s.EditText = ""
	return s
}

func (s State) Updated() State {
	return s.CancelEdit()
}

func (s State) UpdateFailed() State {
	s.Error = ErrUpdate
	return s
}

func (s State) SetSearch(term string) State {
	s.Search = term
	return s
}

// SearchResults muestra el resultado de una busqueda por usuario. Cero resultados no es un
// error de transporte: se muestra el aviso y la lista queda vacia.
func (s State) SearchResults(msgs []domain.Message) State {
	if len(msgs) == 0 {
		s.Error = NoResults
		s.Messages = []domain.Message{}
		return s
	}
	s.Error = ""
	s.Messages = s.sorted(msgs)
	return s
}

func (s State) SearchFailed() State {
	s.Error = ErrSearch
	return s
}

// ToggleSort invierte la direccion y reordena lo que ya se muestra, sin red.
func (s State) ToggleSort() State {
	s.NewestFirst = !s.NewestFirst
	s.Messages = s.sorted(s.Messages)
	return s
}

// Editing indica si el mensaje con ese id esta en modo edicion.
func (s State) Editing(id string) bool {
	return s.EditID != "" && s.EditID == id
}
