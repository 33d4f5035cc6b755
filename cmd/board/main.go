package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"shui/internal/board"
	"shui/internal/client"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	baseURL := os.Getenv("BOARD_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	b := board.New(client.New(baseURL, nil), logger)
	b.Refresh(ctx)

	title := color.New(color.FgCyan, color.Bold)
	for {
		fmt.Println()
		title.Println("===== Shui =====")
		board.Render(os.Stdout, b.State())

		if id := b.State().EditID; id != "" {
			editMenu(ctx, reader, b)
			continue
		}

		fmt.Println("[1] Publicar  [2] Editar  [3] Buscar usuario  [4] Ver todos  [5] Cambiar orden  [6] Salir")
		fmt.Print("Selecciona una opcion: ")
		switch readLine(reader) {
		case "1":
			username := prompt(reader, "Usuario: ")
			text := prompt(reader, "Mensaje: ")
			if username == "" || text == "" {
				fmt.Println("Usuario y mensaje son obligatorios.")
				continue
			}
			b.Submit(ctx, username, text)
		case "2":
			pickForEdit(reader, b)
		case "3":
			b.Search(ctx, prompt(reader, "Usuario a buscar: "))
		case "4":
			b.Search(ctx, "")
		case "5":
			b.ToggleSort()
		case "6":
			return
		default:
			fmt.Println("Opcion invalida.")
		}
	}
}

func editMenu(ctx context.Context, reader *bufio.Reader, b *board.Board) {
	fmt.Printf("Editando: %s\n", b.State().EditText)
	fmt.Println("[1] Nuevo texto  [2] Guardar  [3] Cancelar  [4] Editar otro mensaje")
	fmt.Print("Selecciona una opcion: ")
	switch readLine(reader) {
	case "1":
		b.SetEditText(prompt(reader, "Texto: "))
	case "2":
		b.SaveEdit(ctx)
	case "3":
		b.CancelEdit()
	case "4":
		// La edicion en curso se descarta sin guardar.
		pickForEdit(reader, b)
	default:
		fmt.Println("Opcion invalida.")
	}
}

// pickForEdit pide el numero de fila mostrado y entra en modo edicion para ese mensaje.
func pickForEdit(reader *bufio.Reader, b *board.Board) {
	idx, err := strconv.Atoi(prompt(reader, "Numero de mensaje: "))
	msgs := b.State().Messages
	if err != nil || idx < 1 || idx > len(msgs) {
		fmt.Println("Seleccion invalida.")
		return
	}
	b.StartEdit(msgs[idx-1].ID)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	return readLine(reader)
}

func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		os.Exit(0)
	}
	return strings.TrimSpace(line)
}
