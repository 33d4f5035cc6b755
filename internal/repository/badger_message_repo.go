package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"shui/internal/domain"
)

// BadgerMessageRepository guarda cada mensaje como JSON bajo la clave "<tabla>:<id>".
type BadgerMessageRepository struct {
	db     *badger.DB
	prefix []byte
}

func NewBadgerMessageRepository(db *badger.DB, table string) *BadgerMessageRepository {
	return &BadgerMessageRepository{db: db, prefix: []byte(table + ":")}
}

func (r *BadgerMessageRepository) key(id string) []byte {
	return append(append([]byte{}, r.prefix...), id...)
}

func (r *BadgerMessageRepository) Create(_ context.Context, message domain.Message) error {
	value, err := json.Marshal(message)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(r.key(message.ID), value)
	})
}

// List hace un prefix scan; el orden es el de las claves.
func (r *BadgerMessageRepository) List(_ context.Context) ([]domain.Message, error) {
	messages := []domain.Message{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(r.prefix); it.ValidForPrefix(r.prefix); it.Next() {
			var msg domain.Message
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &msg)
			})
			if err != nil {
				return err
			}
			messages = append(messages, msg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *BadgerMessageRepository) GetByID(_ context.Context, id string) (domain.Message, error) {
	var msg domain.Message
	err := r.db.View(func(txn *badger.Txn) error {
		var err error
		msg, err = r.get(txn, id)
		return err
	})
	return msg, err
}

func (r *BadgerMessageRepository) UpdateText(_ context.Context, id, text string) (domain.Message, error) {
	var msg domain.Message
	err := r.db.Update(func(txn *badger.Txn) error {
		current, err := r.get(txn, id)
		if err != nil {
			return err
		}
		current.Text = text
		value, err := json.Marshal(current)
		if err != nil {
			return err
		}
		if err := txn.Set(r.key(id), value); err != nil {
			return err
		}
		msg = current
		return nil
	})
	if err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

func (r *BadgerMessageRepository) get(txn *badger.Txn, id string) (domain.Message, error) {
	item, err := txn.Get(r.key(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Message{}, ErrNotFound
	}
	if err != nil {
		return domain.Message{}, err
	}
	var msg domain.Message
	err = item.Value(func(value []byte) error {
		return json.Unmarshal(value, &msg)
	})
	return msg, err
}
