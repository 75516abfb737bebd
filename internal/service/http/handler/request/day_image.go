package request

import (
	"fmt"
	"time"

	"github.com/reusedev/weather-viewer/internal/modules/weather"
)

type DayImage struct {
	Device string `form:"device" binding:"required"`
	Date   string `form:"date"`                    // YYYY-MM-DD, today when empty
	Size   string `form:"size" binding:"required"` // WIDTHxHEIGHTxDENSITY
}

func (d *DayImage) FullWithDefault() {
	if d.Date == "" {
		d.Date = time.Now().Format(weather.DateLayout)
	}
}

func (d *DayImage) ToRequest() (weather.DayImageRequest, error) {
	if _, err := time.Parse(weather.DateLayout, d.Date); err != nil {
		return weather.DayImageRequest{}, fmt.Errorf("invalid date: %s, must be YYYY-MM-DD", d.Date)
	}
	size, err := weather.ParseImageSize(d.Size)
	if err != nil {
		return weather.DayImageRequest{}, err
	}
	return weather.DayImageRequest{Device: d.Device, Date: d.Date, Size: size}, nil
}

type History struct {
	Device string `form:"device" binding:"required"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}
