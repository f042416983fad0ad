package objectstorage

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/gamepedia/community-service/config"
	"github.com/gamepedia/community-service/pkg/httpclient"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

// ObjectStorage stores an uploaded image and returns its stable URL.
type ObjectStorage interface {
	Upload(ctx context.Context, filename string, contentType string, body []byte) (string, error)
}

type HTTPObjectStorage struct {
	config config.StorageConfig
}

func CreateHTTPObjectStorage(config config.StorageConfig) ObjectStorage {
	return &HTTPObjectStorage{config: config}
}

func (s *HTTPObjectStorage) Upload(ctx context.Context, filename string, contentType string, body []byte) (string, error) {
	key := ulid.Make().String() + path.Ext(filename)
	location := fmt.Sprintf("%s/%s/%s", s.config.BaseURL, s.config.Bucket, key)

	statusCode, _, err := httpclient.SendRequest(httpclient.HttpRequest{
		URL:    location,
		Method: http.MethodPut,
		Body:   body,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("component", "Upload").Msg("")
		return "", err
	}
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("object storage returned status %d", statusCode)
	}

	return location, nil
}
