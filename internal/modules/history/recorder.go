package history

import (
	"context"
	"time"

	"github.com/jinzhu/copier"
	"github.com/reusedev/weather-viewer/internal/modules/model"
	"gorm.io/gorm"
)

// Entry is one delivered fetch as the app sees it.
type Entry struct {
	HandleId    string
	Device      string
	Date        string
	Size        string
	Outcome     model.FetchOutcome
	StatusCode  int
	Message     string
	RecordCount int
	ImageBytes  int
	LocalPath   string
	ArchiveKey  string
	Duration    time.Duration
}

type Recorder struct {
	db *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

func (r *Recorder) Migrate() error {
	return r.db.AutoMigrate(&model.FetchHistory{})
}

func (r *Recorder) Record(ctx context.Context, e Entry) error {
	row := model.FetchHistory{}
	if err := copier.Copy(&row, &e); err != nil {
		return err
	}
	row.Outcome = e.Outcome.String()
	row.DurationMs = e.Duration.Milliseconds()
	return r.db.WithContext(ctx).Create(&row).Error
}

// Recent lists the newest rows for device, newest first.
func (r *Recorder) Recent(ctx context.Context, device string, limit int) ([]model.FetchHistory, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []model.FetchHistory
	err := r.db.WithContext(ctx).Model(&model.FetchHistory{}).
		Where("device = ?", device).
		Order("id desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
