// Package storage archives generated documents to Azure Blob Storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/JaimeStill/moodai/pkg/lifecycle"
)

// Blob is a stored object opened for reading. The caller closes Body.
type Blob struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

// System writes and reads blobs in a single container.
type System interface {
	// Start ensures the container exists once the lifecycle starts.
	Start(lc *lifecycle.Coordinator) error
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	// Download opens the blob at key, or fails with ErrNotFound.
	Download(ctx context.Context, key string) (*Blob, error)
}

type container struct {
	client *azblob.Client
	name   string
	logger *slog.Logger
}

// New builds an Azure-backed System. No request is made until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &container{
		client: client,
		name:   cfg.ContainerName,
		logger: logger.With("system", "storage", "container", cfg.ContainerName),
	}, nil
}

func (c *container) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		_, err := c.client.CreateContainer(lc.Context(), c.name, nil)
		switch {
		case err == nil:
			c.logger.Info("container created")
		case bloberror.HasCode(err, bloberror.ContainerAlreadyExists):
			c.logger.Info("container ready")
		default:
			c.logger.Error("container init failed", "error", err)
		}
	})
	return nil
}

func (c *container) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	_, err := c.client.UploadStream(ctx, c.name, key, r, &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	c.logger.Debug("blob uploaded", "key", key)
	return nil
}

func (c *container) Download(ctx context.Context, key string) (*Blob, error) {
	if err := CheckKey(key); err != nil {
		return nil, err
	}
	resp, err := c.client.DownloadStream(ctx, c.name, key, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", key, err)
	}

	b := &Blob{Body: resp.Body}
	if resp.ContentType != nil {
		b.ContentType = *resp.ContentType
	}
	if resp.ContentLength != nil {
		b.ContentLength = *resp.ContentLength
	}
	return b, nil
}

// CheckKey rejects keys that are empty, absolute, or that climb out of the
// container with a ".." segment.
func CheckKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	for seg := range strings.SplitSeq(key, "/") {
		if seg == ".." {
			return ErrInvalidKey
		}
	}
	return nil
}

type disabled struct{}

// Disabled is the System used when no container is configured. Uploads and
// downloads fail with ErrDisabled.
func Disabled() System { return disabled{} }

func (disabled) Start(*lifecycle.Coordinator) error { return nil }

func (disabled) Upload(context.Context, string, io.Reader, string) error { return ErrDisabled }

func (disabled) Download(context.Context, string) (*Blob, error) { return nil, ErrDisabled }
