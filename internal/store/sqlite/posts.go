package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/postdeskapp/postdesk-server/internal/domain"
	"github.com/postdeskapp/postdesk-server/internal/store"
)

// postColumns is the ordered list of columns selected in post queries.
// Must match the scan order in scanPost.
const postColumns = `id, title, content, tags_json, contact_id, created_at, updated_at`

// scanPost scans a sql.Row (or sql.Rows via its Scan method) into a PostRecord.
func scanPost(scanner interface{ Scan(dest ...any) error }) (*domain.PostRecord, error) {
	var rec domain.PostRecord

	var (
		contactID sql.NullInt64
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&rec.ID,
		&rec.Title,
		&rec.Content,
		&rec.TagsJSON,
		&contactID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if contactID.Valid {
		rec.ContactID = &contactID.Int64
	}
	rec.Created, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	rec.Updated, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// nullInt64 converts an optional id into its SQL form.
func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// CreatePost inserts a new post, assigning its id and both timestamps.
func (s *Store) CreatePost(ctx context.Context, rec *domain.PostRecord) error {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (title, content, tags_json, contact_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Title,
		rec.Content,
		rec.TagsJSON,
		nullInt64(rec.ContactID),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	rec.ID = id
	rec.Created = now
	rec.Updated = now
	return nil
}

// GetPost retrieves a post by id.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) GetPost(ctx context.Context, id int64) (*domain.PostRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`, id)

	rec, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListPosts returns all posts in insertion order.
func (s *Store) ListPosts(ctx context.Context) ([]*domain.PostRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*domain.PostRecord
	for rows.Next() {
		rec, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if recs == nil {
		recs = []*domain.PostRecord{}
	}

	return recs, nil
}

// UpdatePost overwrites a post's mutable columns and advances its updated
// timestamp. The created timestamp is immutable.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) UpdatePost(ctx context.Context, rec *domain.PostRecord) error {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE posts
		SET title = ?, content = ?, tags_json = ?, contact_id = ?, updated_at = ?
		WHERE id = ?`,
		rec.Title,
		rec.Content,
		rec.TagsJSON,
		nullInt64(rec.ContactID),
		formatTime(now),
		rec.ID,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	rec.Updated = now
	return nil
}

// DeletePost removes a post by id.
// Returns store.ErrNotFound if the post does not exist.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
