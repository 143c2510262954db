package logship

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/SudoMagicCode/action-build-td-tox-package/internal/logging"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Connection settings of an S3-compatible log bucket.
type Config struct {
	Endpoint  string // Host and port, without scheme.
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
	Prefix    string // Object name prefix inside the bucket.
	UseSSL    bool
}

// Reports whether an endpoint was configured at all.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// Checks that every required field is set.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Endpoint) == "":
		return fmt.Errorf("%w: endpoint is required", ErrConfig)
	case strings.Contains(c.Endpoint, "://"):
		return fmt.Errorf("%w: endpoint must not include scheme: %q", ErrConfig, c.Endpoint)
	case strings.TrimSpace(c.AccessKey) == "":
		return fmt.Errorf("%w: access key is required", ErrConfig)
	case strings.TrimSpace(c.SecretKey) == "":
		return fmt.Errorf("%w: secret key is required", ErrConfig)
	case strings.TrimSpace(c.Bucket) == "":
		return fmt.Errorf("%w: bucket is required", ErrConfig)
	}
	return nil
}

// Uploads logs to an S3-compatible bucket.
type S3 struct {
	client *minio.Client
	cfg    Config
}

// Creates an [S3] shipper. No request is made until the first upload.
func NewS3(cfg Config) (*S3, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return &S3{client: client, cfg: cfg}, nil
}

// Implements [Shipper].
//
// Creates the bucket if it does not exist. Build identity is attached as
// object user metadata.
func (s *S3) Ship(ctx context.Context, rec Record) error {
	if _, err := checkLog(rec.Path); err != nil {
		return fmt.Errorf("%w: %w", ErrShip, err)
	}

	if err := s.ensureBucket(ctx); err != nil {
		return fmt.Errorf("%w: bucket %s: %w", ErrShip, s.cfg.Bucket, err)
	}

	key := objectKey(s.cfg.Prefix, rec)
	info, err := s.client.FPutObject(ctx, s.cfg.Bucket, key, rec.Path, minio.PutObjectOptions{
		ContentType:  "text/plain; charset=utf-8",
		UserMetadata: userMetadata(rec),
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrShip, key, err)
	}

	slog.Info("log uploaded",
		"bucket", s.cfg.Bucket,
		"key", key,
		"bytes", info.Size,
		logging.Depth(2),
	)
	return nil
}

func (s *S3) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region})
}

// Returns the non-empty build identity fields as object metadata.
func userMetadata(rec Record) map[string]string {
	md := make(map[string]string, 4)
	for k, v := range map[string]string{
		"build-id": rec.BuildID,
		"version":  rec.Version,
		"commit":   rec.Commit,
		"source":   rec.Source,
	} {
		if v != "" {
			md[k] = v
		}
	}
	return md
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}
