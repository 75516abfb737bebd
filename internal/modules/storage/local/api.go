package local

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

const dayImagePrefix = "getTodayImage_"

// DayImagePath is where the day image for date lands in dir.
func DayImagePath(dir, date string) string {
	return filepath.Join(dir, dayImagePrefix+date+".png")
}

// ThumbnailPath sits next to the image it was made from.
func ThumbnailPath(imagePath string) string {
	ext := filepath.Ext(imagePath)
	return strings.TrimSuffix(imagePath, ext) + "_thumb" + ext
}

func SaveFile(f io.Reader, path string) error {
	dir := filepath.Dir(path)
	err := os.MkdirAll(dir, 0770)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = io.Copy(file, f)
	if err != nil {
		return err
	}
	return nil
}

func DeleteFile(path string) error {
	return os.Remove(path)
}
