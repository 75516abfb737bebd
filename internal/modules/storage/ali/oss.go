package ali

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	"github.com/reusedev/weather-viewer/config"
)

type Client struct {
	client     *oss.Client
	endpoint   string
	bucketName string
	directory  string
}

func New(cfg config.AliOss) (*Client, error) {
	if cfg.Bucket == "" || cfg.Endpoint == "" {
		return nil, errors.New("oss endpoint and bucket are required")
	}
	credential := credentials.NewStaticCredentialsProvider(cfg.AccessKeyId, cfg.AccessKeySecret, "")
	ossCfg := oss.LoadDefaultConfig().
		WithCredentialsProvider(credential).
		WithEndpoint(cfg.Endpoint).WithRegion(cfg.Region)
	client := oss.NewClient(ossCfg)
	if client == nil {
		return nil, errors.New("create oss client failed")
	}
	return &Client{
		client:     client,
		endpoint:   cfg.Endpoint,
		bucketName: cfg.Bucket,
		directory:  cfg.Directory,
	}, nil
}

func (o *Client) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	fullKey := o.fullPath(key)
	request := &oss.PutObjectRequest{
		Bucket:             oss.Ptr(o.bucketName),
		Key:                oss.Ptr(fullKey),
		Body:               reader,
		ContentType:        oss.Ptr(contentType),
		ContentDisposition: oss.Ptr(fmt.Sprintf("attachment; filename=\"%s\"", path.Base(key))),
	}
	if _, err := o.client.PutObject(ctx, request); err != nil {
		return fmt.Errorf("failed to upload to oss: %w", err)
	}
	return nil
}

// URL presigns a download link for an archived key.
func (o *Client) URL(ctx context.Context, key string, expire time.Duration) (string, error) {
	ret, err := o.client.Presign(ctx, &oss.GetObjectRequest{Bucket: oss.Ptr(o.bucketName), Key: oss.Ptr(o.fullPath(key))}, oss.PresignExpires(expire))
	if err != nil {
		return "", err
	}
	return ret.URL, nil
}

func (o *Client) fullPath(key string) string {
	if o.directory == "" {
		return key
	}
	return path.Join(o.directory, key)
}
