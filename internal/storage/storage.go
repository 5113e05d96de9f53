package storage

import (
	"io"
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/config"
)

// Client is the cover-art store the importer writes into and the API serves
// from. The backend is picked once from config.
type Client struct {
	backend Provider
}

func New(cfg *config.Config) *Client {
	var backend Provider

	// 1. Backend Selection
	if cfg.Storage.Provider == "s3" {
		s3Config := &aws.Config{
			Credentials:      credentials.NewStaticCredentials(cfg.Storage.KeyID, cfg.Storage.AppKey, ""),
			Endpoint:         aws.String(cfg.Storage.Endpoint),
			Region:           aws.String(cfg.Storage.Region),
			S3ForcePathStyle: aws.Bool(true),
		}
		sess := session.Must(session.NewSession(s3Config))
		backend = NewS3Provider(sess, cfg.Storage.Bucket)
		log.Printf("✅ Cover storage: s3 bucket %q", cfg.Storage.Bucket)
	} else {
		backend = NewLocalProvider(cfg.Storage.LocalDir)
		log.Printf("✅ Cover storage: local dir %q", cfg.Storage.LocalDir)
	}

	return &Client{backend: backend}
}

// GetCover fetches one stored cover image.
func (c *Client) GetCover(key string) (*FileObject, error) {
	return c.backend.Get(key)
}

// PutCover stores a cover image under the given key.
func (c *Client) PutCover(key string, body io.ReadSeeker, contentType string) error {
	return c.backend.Put(key, body, contentType)
}

// HasCover reports whether a cover is already stored. The importer uses it
// to skip re-extracting artwork for albums it has seen.
func (c *Client) HasCover(key string) bool {
	ok, err := c.backend.Exists(key)
	return err == nil && ok
}

// DeleteCover removes a stored cover image.
func (c *Client) DeleteCover(key string) error {
	return c.backend.Delete(key)
}

// CoverURL is the API path a stored key is served under.
func (c *Client) CoverURL(key string) string {
	return "/covers/" + key
}
