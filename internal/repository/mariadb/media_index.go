package mariadb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/query"
	"github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"

	"github.com/go-sql-driver/mysql"
)

type MediaIndexRepository struct {
	db *sql.DB
}

// compile-time check: *MediaIndexRepository must satisfy gallery.MediaIndex
var _ gallery.MediaIndex = (*MediaIndexRepository)(nil)

func NewMediaIndexRepository(db *sql.DB) *MediaIndexRepository {
	return &MediaIndexRepository{db: db}
}

const mediaColumns = "id, mime_type, group_name, date_taken, date_added, date_modified, width, height, file_path, preview_path, created_at, updated_at"

// Query fetches the page of rows matching q, newest first. Rows missing a
// capture time sort by their synthetic key when q.UseDateAdded is set.
func (r *MediaIndexRepository) Query(ctx context.Context, q query.Query) ([]model.MediaRecord, error) {
	log.Printf("querying the media index (limit %d)...", q.Limit)

	stmt, args := buildSelect(q)
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, mapLoadErr(err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.MediaRecord
	for rows.Next() {
		var rec model.MediaRecord
		if err := rows.Scan(
			&rec.ID, &rec.MimeType, &rec.GroupName,
			&rec.DateTaken, &rec.DateAdded, &rec.DateModified,
			&rec.Width, &rec.Height,
			&rec.FilePath, &rec.PreviewPath,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, mapLoadErr(err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapLoadErr(err)
	}
	return records, nil
}

func buildSelect(q query.Query) (string, []any) {
	var where []string
	var args []any

	if q.Cursor != nil {
		if q.UseDateAdded {
			where = append(where, "CASE WHEN date_taken <= 0 THEN date_added <= ? ELSE date_taken < ? END")
			args = append(args, *q.Cursor/1000, *q.Cursor)
		} else {
			where = append(where, "date_taken < ?")
			args = append(args, *q.Cursor)
		}
	}
	if q.GroupName != "" {
		where = append(where, "group_name = ?")
		args = append(args, q.GroupName)
	}
	// the slash keeps this in lockstep with the in-memory evaluator, which
	// matches on the "image/"/"video/" prefixes
	switch q.AssetType {
	case model.AssetTypePhotos:
		where = append(where, "mime_type LIKE 'image/%'")
	case model.AssetTypeVideos:
		where = append(where, "mime_type LIKE 'video/%'")
	default:
		where = append(where, "(mime_type LIKE 'image/%' OR mime_type LIKE 'video/%')")
	}
	if len(q.MimeTypes) > 0 {
		where = append(where, "mime_type IN (?"+strings.Repeat(", ?", len(q.MimeTypes)-1)+")")
		for _, mt := range q.MimeTypes {
			args = append(args, mt)
		}
	}

	orderKey := "date_taken"
	if q.UseDateAdded {
		orderKey = "CASE WHEN date_taken <= 0 THEN date_added * 1000 ELSE date_taken END"
	}

	stmt := "SELECT " + mediaColumns + " FROM media_index WHERE " + strings.Join(where, " AND ") +
		" ORDER BY " + orderKey + " DESC, date_modified DESC LIMIT ?"
	args = append(args, q.Limit)
	if q.Offset > 0 {
		stmt += " OFFSET ?"
		args = append(args, q.Offset)
	}
	return stmt, args
}

func (r *MediaIndexRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MediaRecord, error) {
	log.Printf("fetching media #%s from the index...", id)

	const stmt = "SELECT " + mediaColumns + " FROM media_index WHERE id = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, stmt, id))
}

func (r *MediaIndexRepository) FindByPath(ctx context.Context, path string) (*model.MediaRecord, error) {
	log.Printf("looking up media at %q in the index...", path)

	const stmt = "SELECT " + mediaColumns + " FROM media_index WHERE file_path = ?"
	return r.scanOne(r.db.QueryRowContext(ctx, stmt, path))
}

func (r *MediaIndexRepository) scanOne(row *sql.Row) (*model.MediaRecord, error) {
	var rec model.MediaRecord
	err := row.Scan(
		&rec.ID, &rec.MimeType, &rec.GroupName,
		&rec.DateTaken, &rec.DateAdded, &rec.DateModified,
		&rec.Width, &rec.Height,
		&rec.FilePath, &rec.PreviewPath,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gallery.ErrMediaNotFound
	}
	if err != nil {
		return nil, mapLoadErr(err)
	}
	return &rec, nil
}

func (r *MediaIndexRepository) Insert(ctx context.Context, rec *model.MediaRecord) error {
	log.Printf("inserting media #%s at %q into the index...", rec.ID, rec.FilePath)

	const stmt = `
      INSERT INTO media_index
        (id, mime_type, group_name, date_taken, date_added, date_modified, width, height, file_path, preview_path)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, stmt,
		rec.ID, rec.MimeType, rec.GroupName,
		rec.DateTaken, rec.DateAdded, rec.DateModified,
		rec.Width, rec.Height,
		rec.FilePath, rec.PreviewPath,
	)
	return err
}

func (r *MediaIndexRepository) Update(ctx context.Context, rec *model.MediaRecord) error {
	log.Printf("updating media #%s in the index...", rec.ID)

	const stmt = `
      UPDATE media_index
      SET
        mime_type     = ?,
        group_name    = ?,
        date_taken    = ?,
        date_modified = ?,
        width         = ?,
        height        = ?,
        file_path     = ?
      WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, stmt,
		rec.MimeType, rec.GroupName,
		rec.DateTaken, rec.DateModified,
		rec.Width, rec.Height,
		rec.FilePath,
		rec.ID, // WHERE clause
	)
	return err
}

func (r *MediaIndexRepository) SetPreviewPath(ctx context.Context, id uuid.UUID, previewPath string) error {
	log.Printf("recording preview %q for media #%s...", previewPath, id)

	const stmt = "UPDATE media_index SET preview_path = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, stmt, previewPath, id)
	return err
}

func (r *MediaIndexRepository) ListAlbums(ctx context.Context) ([]model.Album, error) {
	log.Println("listing albums from the index...")

	const stmt = `
      SELECT group_name, COUNT(*) AS cnt
      FROM media_index
      GROUP BY group_name
      ORDER BY cnt DESC, group_name ASC
    `
	rows, err := r.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, mapLoadErr(err)
	}
	defer func() { _ = rows.Close() }()

	var albums []model.Album
	for rows.Next() {
		var a model.Album
		if err := rows.Scan(&a.Title, &a.Count); err != nil {
			return nil, mapLoadErr(err)
		}
		albums = append(albums, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapLoadErr(err)
	}
	return albums, nil
}

func (r *MediaIndexRepository) ListPaths(ctx context.Context) ([]string, error) {
	const stmt = "SELECT file_path FROM media_index"
	rows, err := r.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, mapLoadErr(err)
	}
	defer func() { _ = rows.Close() }()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, mapLoadErr(err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapLoadErr(err)
	}
	return paths, nil
}

// mapLoadErr folds driver errors into the read-side sentinels. Access
// denials get their own bucket so callers can answer 403 instead of 500.
func mapLoadErr(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1044, 1045, 1142, 1143:
			return fmt.Errorf("%w: %v", gallery.ErrUnableToLoadPermission, err)
		}
	}
	return fmt.Errorf("%w: %v", gallery.ErrUnableToLoad, err)
}
