package minio

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/reusedev/weather-viewer/config"
)

func TestNew_InvalidEndpoint(t *testing.T) {
	cfg := config.MinIO{
		Endpoint:  "invalid-endpoint:port:scheme",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "weather",
	}
	if _, err := New(context.Background(), cfg); err == nil {
		t.Fatal("expected error with invalid endpoint, got nil")
	}
}

func TestNew_ConnectionRefused(t *testing.T) {
	cfg := config.MinIO{
		Endpoint:  "localhost:12345",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "weather",
	}
	// minio.New does not dial, BucketExists does
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := New(ctx, cfg); err == nil {
		t.Fatal("expected error connecting to non-existent minio, got nil")
	}
}

func TestPut_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	_ = godotenv.Load("../../../../.env.test")
	cfg := config.MinIO{
		Endpoint:  os.Getenv("MINIO_ENDPOINT"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		Bucket:    "weather-test-" + time.Now().Format("20060102-150405"),
	}
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		t.Skip("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY not set")
	}

	ctx := context.Background()
	client, err := New(ctx, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	key := "weather/esp8266_1/2023-03-14.png"
	if err := client.Put(ctx, key, strings.NewReader("png"), "image/png"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	obj, err := client.client.GetObject(ctx, cfg.Bucket, key, minio.GetObjectOptions{})
	if err != nil {
		t.Fatalf("GetObject() error = %v", err)
	}
	defer obj.Close()
	data, err := io.ReadAll(obj)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	if string(data) != "png" {
		t.Fatalf("unexpected content: got %q", string(data))
	}
}
