package ali

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/reusedev/weather-viewer/config"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(config.AliOss{Endpoint: "oss-cn-hangzhou.aliyuncs.com"})
	require.Error(t, err)
}

func TestFullPath(t *testing.T) {
	c, err := New(config.AliOss{Endpoint: "oss-cn-hangzhou.aliyuncs.com", Region: "cn-hangzhou", Bucket: "b"})
	require.NoError(t, err)
	require.Equal(t, "weather/esp/2023-03-14.png", c.fullPath("weather/esp/2023-03-14.png"))

	c.directory = "cloud_test/"
	require.Equal(t, "cloud_test/weather/esp/2023-03-14.png", c.fullPath("weather/esp/2023-03-14.png"))
}

func TestPresignURL(t *testing.T) {
	c, err := New(config.AliOss{
		AccessKeyId:     "id",
		AccessKeySecret: "secret",
		Endpoint:        "oss-cn-hangzhou.aliyuncs.com",
		Region:          "cn-hangzhou",
		Bucket:          "weather",
	})
	require.NoError(t, err)
	u, err := c.URL(context.Background(), "weather/esp/2023-03-14.png", time.Hour)
	require.NoError(t, err)
	require.Contains(t, u, "weather/esp/2023-03-14.png")
}

func TestUpload(t *testing.T) {
	if os.Getenv("ALI_OSS_ACCESS_KEY_SECRET") == "" {
		t.Skip("ALI_OSS_ACCESS_KEY_SECRET not set")
	}
	c, err := New(config.AliOss{
		AccessKeyId:     os.Getenv("ALI_OSS_ACCESS_KEY_ID"),
		AccessKeySecret: os.Getenv("ALI_OSS_ACCESS_KEY_SECRET"),
		Endpoint:        os.Getenv("ALI_OSS_ENDPOINT"),
		Region:          os.Getenv("ALI_OSS_REGION"),
		Bucket:          os.Getenv("ALI_OSS_BUCKET"),
		Directory:       "cloud_test/",
	})
	require.NoError(t, err)
	err = c.Put(context.Background(), "weather/test/123213.txt", strings.NewReader("123"), "text/plain")
	require.NoError(t, err)
}
