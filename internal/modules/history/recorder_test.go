package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/reusedev/weather-viewer/internal/modules/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestRecord(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `fetch_history`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := NewRecorder(db).Record(context.Background(), Entry{
		HandleId:    "6b1f1c1e-0000-0000-0000-000000000000",
		Device:      "esp8266_1",
		Date:        "2023-03-14",
		Size:        "1064x1680x2.5",
		Outcome:     model.FetchOutcomeSuccess,
		StatusCode:  200,
		RecordCount: 144,
		ImageBytes:  2048,
		Duration:    1500 * time.Millisecond,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecord_InsertFails(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `fetch_history`").
		WillReturnError(errors.New("table is read only"))
	mock.ExpectRollback()

	err := NewRecorder(db).Record(context.Background(), Entry{Device: "esp8266_1", Outcome: model.FetchOutcomeError})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecent(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "device", "date", "outcome", "record_count"}).
		AddRow(2, "esp8266_1", "2023-03-14", "warning", 0).
		AddRow(1, "esp8266_1", "2023-03-13", "success", 144)
	mock.ExpectQuery("SELECT \\* FROM `fetch_history` WHERE device = \\? ORDER BY id desc LIMIT \\?").
		WithArgs("esp8266_1", 5).
		WillReturnRows(rows)

	got, err := NewRecorder(db).Recent(context.Background(), "esp8266_1", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "warning", got[0].Outcome)
	require.Equal(t, 144, got[1].RecordCount)
	require.NoError(t, mock.ExpectationsWereMet())
}
