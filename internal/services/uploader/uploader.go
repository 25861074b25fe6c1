// Package uploader загружает выбранные фотографии в хранилище объектов
// и возвращает их публичные адреса в порядке выбора.
package uploader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/metrics"
	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/objectstore"
)

const keyPrefix = "public/"

// ObjectStore описывает хранилище объектов.
type ObjectStore interface {
	Put(ctx context.Context, bucket, key string, body io.Reader, opts objectstore.PutOptions) error
	PublicURL(bucket, key string) string
}

// ProgressFunc вызывается после каждого сохранённого файла.
type ProgressFunc func(done, total int)

// Service загружает фотографии последовательно, по одной.
type Service struct {
	store        ObjectStore
	bucket       string
	cacheControl string
	log          *slog.Logger
	now          func() time.Time
	suffix       func() string
}

// NewService создаёт Service для указанного бакета.
func NewService(store ObjectStore, bucket, cacheControl string, log *slog.Logger) *Service {
	return &Service{
		store:        store,
		bucket:       bucket,
		cacheControl: cacheControl,
		log:          log,
		now:          time.Now,
		suffix:       randomSuffix,
	}
}

// Upload загружает файлы строго по очереди и возвращает адреса в том же порядке.
// Первая ошибка прерывает загрузку; уже загруженные объекты не удаляются.
func (s *Service) Upload(ctx context.Context, files []models.PhotoFile, progress ProgressFunc) ([]string, error) {
	const op = "services.uploader.Upload"

	urls := make([]string, 0, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		key := s.Key(f.Name)
		err := s.store.Put(ctx, s.bucket, key, f.Content, objectstore.PutOptions{
			ContentType:  f.ContentType,
			CacheControl: s.cacheControl,
			NoOverwrite:  true,
		})
		if err != nil {
			s.log.Error("photo upload failed",
				slog.String("op", op),
				slog.String("file", f.Name),
				slog.Int("index", i),
				sl.Err(err),
			)
			return nil, fmt.Errorf("%s: %s: %w", op, f.Name, err)
		}

		urls = append(urls, s.store.PublicURL(s.bucket, key))
		metrics.PhotosUploaded.Inc()
		s.log.Debug("photo uploaded", slog.String("op", op), slog.String("key", key))

		if progress != nil {
			progress(i+1, len(files))
		}
	}
	return urls, nil
}

// Key строит ключ объекта: public/<unix-millis>-<случайный суффикс>.<расширение>.
func (s *Service) Key(fileName string) string {
	return fmt.Sprintf("%s%d-%s.%s", keyPrefix, s.now().UnixMilli(), s.suffix(), Extension(fileName))
}

// Extension возвращает текст после последней точки имени файла,
// либо всё имя, если точки нет.
func Extension(fileName string) string {
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		return fileName[i+1:]
	}
	return fileName
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
