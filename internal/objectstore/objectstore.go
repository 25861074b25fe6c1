// Package objectstore — клиент S3-совместимого хранилища фотографий.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/magabrotheeeer/trd-registration/internal/config"
)

// PutOptions задают заголовки загружаемого объекта.
type PutOptions struct {
	ContentType  string
	CacheControl string
	// NoOverwrite запрещает перезапись существующего объекта (If-None-Match: *).
	NoOverwrite bool
}

// Store загружает объекты и строит их публичные адреса.
type Store struct {
	client        *s3.Client
	publicBaseURL string
}

// New создаёт клиент хранилища по настройкам сервиса.
func New(ctx context.Context, cfg config.ObjectStorage) (*Store, error) {
	const op = "objectstore.New"

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	cfgAWS, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to load AWS config: %w", op, err)
	}

	client := s3.NewFromConfig(cfgAWS, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	publicBaseURL := cfg.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = cfg.Endpoint
	}

	return &Store{
		client:        client,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// Put загружает body под ключом key в bucket.
// Тело буферизуется, если не поддерживает Seek: подпись запроса требует повторного чтения.
func (s *Store) Put(ctx context.Context, bucket, key string, body io.Reader, opts PutOptions) error {
	const op = "objectstore.Put"

	rs, ok := body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("%s: read body: %w", op, err)
		}
		rs = bytes.NewReader(data)
	}
	size, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = rs.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          rs,
		ContentLength: aws.Int64(size),
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.CacheControl != "" {
		input.CacheControl = aws.String(opts.CacheControl)
	}
	if opts.NoOverwrite {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err = s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("%s: failed to upload %s: %w", op, key, err)
	}
	return nil
}

// PublicURL возвращает публичный адрес объекта: <public_base_url>/<bucket>/<key>.
func (s *Store) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, bucket, key)
}
