package board

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

const dateLayout = "Monday 2 Jan 15:04"

// FormatDate muestra createdAt en hora local, p. ej. "Monday 2 Jan 15:04".
func FormatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// SortLabel describe la direccion de orden actual.
func (s State) SortLabel() string {
	if s.NewestFirst {
		return "Newest first"
	}
	return "Oldest first"
}

// Render pinta la vista: el error (si hay), la cabecera y la tabla de mensajes.
func Render(w io.Writer, s State) {
	if s.Error != "" {
		color.New(color.FgRed).Fprintln(w, s.Error)
	}
	header := "All messages"
	if s.Search != "" {
		header = fmt.Sprintf("Messages by %q", s.Search)
	}
	fmt.Fprintf(w, "%s (%s)\n", header, s.SortLabel())

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "User", "Date", "Text"})
	table.SetAutoWrapText(false)
	for i, msg := range s.Messages {
		text := msg.Text
		if s.Editing(msg.ID) {
			text = "[editing] " + s.EditText
		}
		table.Append([]string{strconv.Itoa(i + 1), msg.Username, FormatDate(msg.CreatedAt), text})
	}
	table.Render()
}
