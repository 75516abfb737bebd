package model

import "time"

type FetchHistory struct {
	Id          int       `json:"id" gorm:"primaryKey"`
	HandleId    string    `json:"handle_id" gorm:"column:handle_id;type:varchar(36)"`
	Device      string    `json:"device" gorm:"column:device;type:varchar(64);index:idx_device_date"`
	Date        string    `json:"date" gorm:"column:date;type:varchar(10);index:idx_device_date"`
	Size        string    `json:"size" gorm:"column:size;type:varchar(32)"`
	Outcome     string    `json:"outcome" gorm:"column:outcome;type:enum('success', 'warning', 'error')"`
	StatusCode  int       `json:"status_code" gorm:"column:status_code;type:int"`
	Message     string    `json:"message" gorm:"column:message;type:varchar(1000)"`
	RecordCount int       `json:"record_count" gorm:"column:record_count;type:int"`
	ImageBytes  int       `json:"image_bytes" gorm:"column:image_bytes;type:int"`
	LocalPath   string    `json:"local_path" gorm:"column:local_path;type:varchar(500)"`
	ArchiveKey  string    `json:"archive_key" gorm:"column:archive_key;type:varchar(500)"`
	DurationMs  int64     `json:"duration_ms" gorm:"column:duration_ms;type:int"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at;type:datetime;not null;default:CURRENT_TIMESTAMP"`
}

func (FetchHistory) TableName() string {
	return "fetch_history"
}

type FetchOutcome string

const (
	FetchOutcomeSuccess FetchOutcome = "success"
	FetchOutcomeWarning FetchOutcome = "warning"
	FetchOutcomeError   FetchOutcome = "error"
)

func (o FetchOutcome) String() string {
	return string(o)
}
