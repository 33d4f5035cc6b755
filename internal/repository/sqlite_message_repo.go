package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shui/internal/domain"
)

// SQLiteMessageRepository implementa MessageRepository sobre database/sql con modernc.org/sqlite.
type SQLiteMessageRepository struct {
	db    *sql.DB
	table string
}

func NewSQLiteMessageRepository(db *sql.DB, table string) *SQLiteMessageRepository {
	return &SQLiteMessageRepository{db: db, table: `"` + strings.ReplaceAll(table, `"`, `""`) + `"`}
}

// EnsureSchema crea la tabla si todavia no existe.
func (r *SQLiteMessageRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`, r.table)
	_, err := r.db.ExecContext(ctx, query)
	return err
}

func (r *SQLiteMessageRepository) Create(ctx context.Context, message domain.Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, username, text, created_at)
		VALUES (?, ?, ?, ?)
	`, r.table)
	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.Username,
		message.Text,
		formatTimestamp(message.CreatedAt),
	)
	return err
}

func (r *SQLiteMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, username, text, created_at
		FROM %s
		ORDER BY rowid
	`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		msg, err := scanSQLiteMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *SQLiteMessageRepository) GetByID(ctx context.Context, id string) (domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, username, text, created_at
		FROM %s
		WHERE id = ?
	`, r.table)
	return scanSQLiteMessage(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteMessageRepository) UpdateText(ctx context.Context, id, text string) (domain.Message, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET text = ?
		WHERE id = ?
		RETURNING id, username, text, created_at
	`, r.table)
	return scanSQLiteMessage(r.db.QueryRowContext(ctx, query, text, id))
}

type sqlScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteMessage(row sqlScanner) (domain.Message, error) {
	var (
		msg       domain.Message
		createdAt string
	)
	err := row.Scan(&msg.ID, &msg.Username, &msg.Text, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Message{}, ErrNotFound
	}
	if err != nil {
		return domain.Message{}, err
	}
	if msg.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.Message{}, fmt.Errorf("parse created_at: %w", err)
	}
	return msg, nil
}
