package mariadb

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	guuid "github.com/google/uuid"

	"github.com/fhuszti/cameraroll-ms-go/internal/model"
	"github.com/fhuszti/cameraroll-ms-go/internal/query"
	"github.com/fhuszti/cameraroll-ms-go/internal/usecase/gallery"
	"github.com/fhuszti/cameraroll-ms-go/internal/uuid"
)

var mediaCols = []string{
	"id", "mime_type", "group_name",
	"date_taken", "date_added", "date_modified",
	"width", "height", "file_path", "preview_path",
	"created_at", "updated_at",
}

func newMock(t *testing.T) (*MediaIndexRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error when opening stub database: %s", err)
	}
	return NewMediaIndexRepository(sqlDB), mock, func() { _ = sqlDB.Close() }
}

func testID() uuid.UUID {
	return uuid.UUID(guuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
}

func idBytes(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	v, err := id.Value()
	if err != nil {
		t.Fatal(err)
	}
	return v.([]byte)
}

func TestMediaIndex_Query_CursorPredicate(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	now := time.Now()
	id := testID()
	cursor := int64(5000000)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+mediaColumns+" FROM media_index WHERE date_taken < ? AND mime_type LIKE 'image/%' ORDER BY date_taken DESC, date_modified DESC LIMIT ?",
	)).
		WithArgs(cursor, 6).
		WillReturnRows(sqlmock.NewRows(mediaCols).
			AddRow(idBytes(t, id), "image/jpeg", "Camera", 4000000, 4000, 4000, 640, 480, "/pictures/a.jpg", nil, now, now))

	rows, err := repo.Query(context.Background(), query.Query{
		Cursor:    &cursor,
		AssetType: model.AssetTypePhotos,
		Limit:     6,
	})
	if err != nil {
		t.Fatalf("Query() returned unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ID != id || rows[0].FilePath != "/pictures/a.jpg" {
		t.Errorf("unexpected row: %+v", rows[0])
	}
	if rows[0].PreviewPath != nil {
		t.Error("expected NULL preview_path to scan to nil")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestMediaIndex_Query_DateAddedPredicate(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	cursor := int64(5000000)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+mediaColumns+" FROM media_index WHERE CASE WHEN date_taken <= 0 THEN date_added <= ? ELSE date_taken < ? END AND mime_type LIKE 'image/%' ORDER BY CASE WHEN date_taken <= 0 THEN date_added * 1000 ELSE date_taken END DESC, date_modified DESC LIMIT ?",
	)).
		WithArgs(cursor/1000, cursor, 3).
		WillReturnRows(sqlmock.NewRows(mediaCols))

	_, err := repo.Query(context.Background(), query.Query{
		Cursor:       &cursor,
		UseDateAdded: true,
		AssetType:    model.AssetTypePhotos,
		Limit:        3,
	})
	if err != nil {
		t.Fatalf("Query() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestMediaIndex_Query_Filters(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT "+mediaColumns+" FROM media_index WHERE group_name = ? AND (mime_type LIKE 'image/%' OR mime_type LIKE 'video/%') AND mime_type IN (?, ?) ORDER BY date_taken DESC, date_modified DESC LIMIT ?",
	)).
		WithArgs("Camera", "image/jpeg", "video/mp4", 10).
		WillReturnRows(sqlmock.NewRows(mediaCols))

	_, err := repo.Query(context.Background(), query.Query{
		GroupName: "Camera",
		MimeTypes: []string{"image/jpeg", "video/mp4"},
		AssetType: model.AssetTypeAll,
		Limit:     10,
	})
	if err != nil {
		t.Fatalf("Query() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestMediaIndex_Query_PermissionDenied(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT").
		WillReturnError(&mysql.MySQLError{Number: 1142, Message: "SELECT command denied"})

	_, err := repo.Query(context.Background(), query.Query{AssetType: model.AssetTypePhotos, Limit: 5})
	if !errors.Is(err, gallery.ErrUnableToLoadPermission) {
		t.Fatalf("expected ErrUnableToLoadPermission, got %v", err)
	}
}

func TestMediaIndex_Query_GenericFailure(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT").
		WillReturnError(errors.New("server has gone away"))

	_, err := repo.Query(context.Background(), query.Query{AssetType: model.AssetTypePhotos, Limit: 5})
	if !errors.Is(err, gallery.ErrUnableToLoad) {
		t.Fatalf("expected ErrUnableToLoad, got %v", err)
	}
}

func TestMediaIndex_GetByID_NotFound(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT").
		WithArgs(testID()).
		WillReturnRows(sqlmock.NewRows(mediaCols))

	_, err := repo.GetByID(context.Background(), testID())
	if !errors.Is(err, gallery.ErrMediaNotFound) {
		t.Fatalf("expected ErrMediaNotFound, got %v", err)
	}
}

func TestMediaIndex_FindByPath_Success(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	now := time.Now()
	id := testID()
	preview := "/pictures/.previews/x.webp"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+mediaColumns+" FROM media_index WHERE file_path = ?")).
		WithArgs("/pictures/a.jpg").
		WillReturnRows(sqlmock.NewRows(mediaCols).
			AddRow(idBytes(t, id), "image/jpeg", "Camera", 0, 4000, 4000, 640, 480, "/pictures/a.jpg", preview, now, now))

	rec, err := repo.FindByPath(context.Background(), "/pictures/a.jpg")
	if err != nil {
		t.Fatalf("FindByPath() returned unexpected error: %v", err)
	}
	if rec.ID != id {
		t.Errorf("unexpected id %s", rec.ID)
	}
	if rec.PreviewPath == nil || *rec.PreviewPath != preview {
		t.Errorf("unexpected preview path %v", rec.PreviewPath)
	}
}

func TestMediaIndex_Insert_Success(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	rec := &model.MediaRecord{
		ID:           testID(),
		MimeType:     "image/jpeg",
		GroupName:    "Camera",
		DateTaken:    1700000000000,
		DateAdded:    1700000000,
		DateModified: 1700000000,
		Width:        640,
		Height:       480,
		FilePath:     "/pictures/Camera/a.jpg",
	}

	mock.ExpectExec(regexp.QuoteMeta(`
      INSERT INTO media_index
        (id, mime_type, group_name, date_taken, date_added, date_modified, width, height, file_path, preview_path)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)).
		WithArgs(
			rec.ID, rec.MimeType, rec.GroupName,
			rec.DateTaken, rec.DateAdded, rec.DateModified,
			rec.Width, rec.Height,
			rec.FilePath, rec.PreviewPath,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Insert(context.Background(), rec); err != nil {
		t.Errorf("Insert() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestMediaIndex_SetPreviewPath(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE media_index SET preview_path = ? WHERE id = ?")).
		WithArgs("/pictures/.previews/x.webp", testID()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetPreviewPath(context.Background(), testID(), "/pictures/.previews/x.webp"); err != nil {
		t.Errorf("SetPreviewPath() returned unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestMediaIndex_ListAlbums(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT group_name, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"group_name", "cnt"}).
			AddRow("Camera", 12).
			AddRow("Holidays", 3))

	albums, err := repo.ListAlbums(context.Background())
	if err != nil {
		t.Fatalf("ListAlbums() returned unexpected error: %v", err)
	}
	if len(albums) != 2 || albums[0].Title != "Camera" || albums[0].Count != 12 {
		t.Errorf("unexpected albums: %v", albums)
	}
}

func TestMediaIndex_ListPaths(t *testing.T) {
	repo, mock, closeDB := newMock(t)
	defer closeDB()

	mock.ExpectQuery("SELECT file_path FROM media_index").
		WillReturnRows(sqlmock.NewRows([]string{"file_path"}).
			AddRow("/pictures/a.jpg").
			AddRow("/pictures/b.jpg"))

	paths, err := repo.ListPaths(context.Background())
	if err != nil {
		t.Fatalf("ListPaths() returned unexpected error: %v", err)
	}
	if len(paths) != 2 || paths[1] != "/pictures/b.jpg" {
		t.Errorf("unexpected paths: %v", paths)
	}
}
