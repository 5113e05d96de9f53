package storage

import (
	"io"
	"mime"
	"os"
	"path/filepath"
)

// LocalProvider keeps covers on the local disk. The default backend; no
// credentials, no network.
type LocalProvider struct {
	Root string
}

func NewLocalProvider(root string) *LocalProvider {
	// Ensure the root directory exists
	_ = os.MkdirAll(root, 0755)
	return &LocalProvider{Root: root}
}

func (l *LocalProvider) Get(key string) (*FileObject, error) {
	path := filepath.Join(l.Root, filepath.FromSlash(key))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	// Local files don't store a content type, so derive one from the
	// extension for the browser's sake.
	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &FileObject{
		Body:          f,
		ContentLength: stat.Size(),
		ContentType:   contentType,
		LastModified:  stat.ModTime(),
	}, nil
}

func (l *LocalProvider) Put(key string, body io.ReadSeeker, contentType string) error {
	path := filepath.Join(l.Root, filepath.FromSlash(key))

	// Ensure sub-directories exist (e.g. artist/album/cover.jpg)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, body)
	return err
}

func (l *LocalProvider) Delete(key string) error {
	return os.Remove(filepath.Join(l.Root, filepath.FromSlash(key)))
}

func (l *LocalProvider) Exists(key string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.Root, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
