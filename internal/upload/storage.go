package upload

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

// Storage persists uploaded objects and returns the public URL of each.
type Storage interface {
	Put(ctx context.Context, folder, name, contentType string, data []byte) (string, error)
}

// LocalStorage writes files under {root}/upload/{folder}/{name}. They are
// served by the API under /upload/.
type LocalStorage struct {
	root string
}

var _ Storage = (*LocalStorage)(nil)

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

// Dir is the directory served at /upload/.
func (s *LocalStorage) Dir() string {
	return filepath.Join(s.root, "upload")
}

func (s *LocalStorage) Put(_ context.Context, folder, name, _ string, data []byte) (string, error) {
	dir := filepath.Join(s.Dir(), folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create upload directory")
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write upload")
	}
	fi, err := os.Stat(p)
	if err != nil {
		return "", errors.Wrap(err, "verify upload")
	}
	if fi.Size() == 0 {
		return "", errors.New("upload written with 0 bytes")
	}
	return path.Join("/upload", folder, name), nil
}

// S3Config configures an S3-compatible bucket (AWS, MinIO, RustFS).
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	// PublicURL prefixes object keys in returned URLs. Defaults to
	// {Endpoint}/{Bucket}.
	PublicURL string
}

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage stores uploads as objects keyed {folder}/{name}.
type S3Storage struct {
	client    s3API
	bucket    string
	publicURL string
}

var _ Storage = (*S3Storage)(nil)

type S3Option func(*S3Storage)

// WithS3Client replaces the SDK client, mainly for tests.
func WithS3Client(c s3API) S3Option {
	return func(s *S3Storage) { s.client = c }
}

func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	s := &S3Storage{bucket: cfg.Bucket, publicURL: strings.TrimRight(cfg.PublicURL, "/")}
	if s.publicURL == "" {
		s.publicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client != nil {
		return s, nil
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "load AWS config")
	}
	if cfg.Endpoint != "" {
		if _, err := url.Parse(cfg.Endpoint); err != nil {
			return nil, errors.Wrap(err, "invalid storage endpoint")
		}
	}
	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return s, nil
}

func (s *S3Storage) Put(ctx context.Context, folder, name, contentType string, data []byte) (string, error) {
	key := path.Join(folder, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", errors.Wrapf(err, "put object %s", key)
	}
	return s.publicURL + "/" + key, nil
}
