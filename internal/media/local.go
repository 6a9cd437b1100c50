package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// LocalStore writes uploads below a directory that the API also serves
// under URLPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{dir: dir, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

func (l *LocalStore) Dir() string {
	return l.dir
}

func (l *LocalStore) URLPrefix() string {
	return l.urlPrefix
}

// Put writes r to key and returns the public path of the file.
func (l *LocalStore) Put(key string, r io.Reader) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	root, err := os.OpenRoot(l.dir)
	if err != nil {
		return "", fmt.Errorf("open uploads dir: %w", err)
	}
	defer root.Close()

	if err := root.MkdirAll(path.Dir(key), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	f, err := root.Create(key)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write upload file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return l.urlPrefix + "/" + key, nil
}

// Delete removes the file behind a public path returned by Put. Paths that
// escape the uploads directory are rejected.
func (l *LocalStore) Delete(ref string) error {
	key, ok := strings.CutPrefix(ref, l.urlPrefix+"/")
	if !ok {
		return fmt.Errorf("not a local upload: %q", ref)
	}

	root, err := os.OpenRoot(l.dir)
	if err != nil {
		return fmt.Errorf("open uploads dir: %w", err)
	}
	defer root.Close()

	if err := root.Remove(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload file: %w", err)
	}

	return nil
}
