package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mrezvani/vocaflash/internal/logger"
	"github.com/mrezvani/vocaflash/internal/models"
	"github.com/mrezvani/vocaflash/internal/store"
)

func (s *Store) InsertCollection(ctx context.Context, c models.Collection) (models.Collection, error) {
	log := logger.FromContext(ctx).WithPrefix("collection_store")

	now := time.Now().UnixMilli()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	log.Debug("inserting collection: id=%s, name=%q", c.ID, c.Name)

	_, err := s.db.ExecContext(ctx, `
INSERT INTO collections (id, name, description, level, language, target_language, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.Name, c.Description, c.Level, c.Language, c.TargetLanguage, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		log.Error("failed to insert collection: %v", err)
		return models.Collection{}, store.NewStoreError("insertCollection", c.Name, err)
	}
	return c, nil
}

func (s *Store) GetCollection(ctx context.Context, id string) (*models.Collection, error) {
	var c models.Collection
	err := s.db.QueryRowContext(ctx, `
SELECT c.id, c.name, c.description, c.level, c.language, c.target_language, c.created_at, c.updated_at,
       (SELECT COUNT(*) FROM cards WHERE collection_id = c.id) AS card_count
FROM collections c
WHERE c.id = ?
`, id).Scan(&c.ID, &c.Name, &c.Description, &c.Level, &c.Language, &c.TargetLanguage,
		&c.CreatedAt, &c.UpdatedAt, &c.CardCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("getCollection", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, store.NewStoreError("getCollection", id, err)
	}
	return &c, nil
}

func (s *Store) ListCollections(ctx context.Context) ([]models.Collection, error) {
	log := logger.FromContext(ctx).WithPrefix("collection_store")

	rows, err := s.db.QueryContext(ctx, `
SELECT c.id, c.name, c.description, c.level, c.language, c.target_language, c.created_at, c.updated_at,
       (SELECT COUNT(*) FROM cards WHERE collection_id = c.id) AS card_count
FROM collections c
ORDER BY c.updated_at DESC
`)
	if err != nil {
		log.Error("failed to list collections: %v", err)
		return nil, store.NewStoreError("listCollections", "", err)
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Level, &c.Language,
			&c.TargetLanguage, &c.CreatedAt, &c.UpdatedAt, &c.CardCount); err != nil {
			return nil, store.NewStoreError("listCollections", "", err)
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

func (s *Store) UpdateCollection(ctx context.Context, c models.Collection) error {
	log := logger.FromContext(ctx).WithPrefix("collection_store")
	log.Debug("updating collection: id=%s", c.ID)

	res, err := s.db.ExecContext(ctx, `
UPDATE collections
SET name = ?, description = ?, level = ?, language = ?, target_language = ?, updated_at = ?
WHERE id = ?
`, c.Name, c.Description, c.Level, c.Language, c.TargetLanguage, time.Now().UnixMilli(), c.ID)
	if err != nil {
		log.Error("failed to update collection: %v", err)
		return store.NewStoreError("updateCollection", c.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.NewStoreError("updateCollection", c.ID, store.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteCollection(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("collection_store")
	log.Debug("deleting collection: id=%s", id)

	// Cascades to cards and their history via foreign keys.
	res, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete collection: %v", err)
		return store.NewStoreError("deleteCollection", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.NewStoreError("deleteCollection", id, store.ErrNotFound)
	}
	return nil
}
