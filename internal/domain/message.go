package domain

import (
	"sort"
	"time"
)

// Message es la unica entidad del tablon: un texto firmado por un usuario.
type Message struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// SortByCreatedAt ordena en sitio por createdAt; los empates conservan el orden recibido.
func SortByCreatedAt(messages []Message, newestFirst bool) {
	sort.SliceStable(messages, func(i, j int) bool {
		if newestFirst {
			return messages[i].CreatedAt.After(messages[j].CreatedAt)
		}
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
}
