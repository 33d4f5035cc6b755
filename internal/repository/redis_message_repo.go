package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"shui/internal/domain"
)

// Guarda el hash del mensaje y lo indexa en el sorted set en un solo paso.
const redisCreateScript = `
redis.call("HSET", KEYS[1], "id", ARGV[1], "username", ARGV[2], "text", ARGV[3], "createdAt", ARGV[4])
redis.call("ZADD", KEYS[2], ARGV[5], ARGV[1])
return 1
`

// Devuelve una lista vacia si el hash no existe; nunca crea claves nuevas.
const redisUpdateTextScript = `
if redis.call("EXISTS", KEYS[1]) == 0 then
  return {}
end
redis.call("HSET", KEYS[1], "text", ARGV[1])
return redis.call("HGETALL", KEYS[1])
`

type redisMessageClient interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	ZRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// RedisMessageRepository guarda cada mensaje en un hash "<tabla>:<id>" y
// mantiene los ids en el sorted set "<tabla>:ids" puntuado por createdAt.
type RedisMessageRepository struct {
	client redisMessageClient
	prefix string
}

func NewRedisMessageRepository(client *redis.Client, table string) *RedisMessageRepository {
	return &RedisMessageRepository{client: client, prefix: table + ":"}
}

func (r *RedisMessageRepository) messageKey(id string) string {
	return r.prefix + id
}

func (r *RedisMessageRepository) indexKey() string {
	return r.prefix + "ids"
}

func (r *RedisMessageRepository) Create(ctx context.Context, message domain.Message) error {
	keys := []string{r.messageKey(message.ID), r.indexKey()}
	return r.client.Eval(ctx, redisCreateScript, keys,
		message.ID,
		message.Username,
		message.Text,
		formatTimestamp(message.CreatedAt),
		message.CreatedAt.UnixMilli(),
	).Err()
}

func (r *RedisMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	messages := make([]domain.Message, 0, len(ids))
	for _, id := range ids {
		fields, err := r.client.HGetAll(ctx, r.messageKey(id)).Result()
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		msg, err := hashToMessage(fields)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (r *RedisMessageRepository) GetByID(ctx context.Context, id string) (domain.Message, error) {
	fields, err := r.client.HGetAll(ctx, r.messageKey(id)).Result()
	if err != nil {
		return domain.Message{}, err
	}
	if len(fields) == 0 {
		return domain.Message{}, ErrNotFound
	}
	return hashToMessage(fields)
}

func (r *RedisMessageRepository) UpdateText(ctx context.Context, id, text string) (domain.Message, error) {
	res, err := r.client.Eval(ctx, redisUpdateTextScript, []string{r.messageKey(id)}, text).Slice()
	if err != nil {
		return domain.Message{}, err
	}
	if len(res) == 0 {
		return domain.Message{}, ErrNotFound
	}
	fields := make(map[string]string, len(res)/2)
	for i := 0; i+1 < len(res); i += 2 {
		fields[fmt.Sprint(res[i])] = fmt.Sprint(res[i+1])
	}
	return hashToMessage(fields)
}

func hashToMessage(fields map[string]string) (domain.Message, error) {
	for _, name := range []string{"id", "username", "text", "createdAt"} {
		if _, ok := fields[name]; !ok {
			return domain.Message{}, fmt.Errorf("hash field %q missing", name)
		}
	}
	createdAt, err := parseTimestamp(strings.TrimSpace(fields["createdAt"]))
	if err != nil {
		return domain.Message{}, fmt.Errorf("parse createdAt: %w", err)
	}
	return domain.Message{
		ID:        fields["id"],
		Username:  fields["username"],
		Text:      fields["text"],
		CreatedAt: createdAt,
	}, nil
}
