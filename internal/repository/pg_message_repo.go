package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shui/internal/domain"
)

// PgMessageRepository implementa MessageRepository usando pgxpool.
type PgMessageRepository struct {
	pool  *pgxpool.Pool
	table string
}

func NewPgMessageRepository(pool *pgxpool.Pool, table string) *PgMessageRepository {
	return &PgMessageRepository{pool: pool, table: pgx.Identifier{table}.Sanitize()}
}

// EnsureSchema crea la tabla si todavia no existe.
func (r *PgMessageRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`, r.table)
	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *PgMessageRepository) Create(ctx context.Context, message domain.Message) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, username, text, created_at)
		VALUES ($1, $2, $3, $4)
	`, r.table)
	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.Username,
		message.Text,
		message.CreatedAt,
	)
	return err
}

func (r *PgMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, username, text, created_at
		FROM %s
	`, r.table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.Username, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.CreatedAt = msg.CreatedAt.UTC()
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PgMessageRepository) GetByID(ctx context.Context, id string) (domain.Message, error) {
	query := fmt.Sprintf(`
		SELECT id, username, text, created_at
		FROM %s
		WHERE id = $1
	`, r.table)
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *PgMessageRepository) UpdateText(ctx context.Context, id, text string) (domain.Message, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET text = $2
		WHERE id = $1
		RETURNING id, username, text, created_at
	`, r.table)
	return r.scanOne(r.pool.QueryRow(ctx, query, id, text))
}

func (r *PgMessageRepository) scanOne(row pgx.Row) (domain.Message, error) {
	var msg domain.Message
	err := row.Scan(&msg.ID, &msg.Username, &msg.Text, &msg.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Message{}, ErrNotFound
	}
	if err != nil {
		return domain.Message{}, err
	}
	msg.CreatedAt = msg.CreatedAt.UTC()
	return msg, nil
}
