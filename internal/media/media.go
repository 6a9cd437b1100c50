// Package media stores uploaded files on local disk or in an S3-compatible
// bucket and resolves stored references into viewable URLs.
package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/flowquote/flowquote/internal/apperr"
)

// ObjectPrefix tags references that point into the object store.
const ObjectPrefix = "r2:"

const (
	PurposeRequests = "requests"
	PurposeLogos    = "logos"
)

// File is an upload as received from a client.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ObjectStore is an S3-compatible bucket.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type Options struct {
	// Object is nil when object storage is not configured; uploads then go
	// to the local directory.
	Object          ObjectStore
	PublicBaseURL   string
	SignedURLs      bool
	SignedURLExpiry time.Duration
}

type Store struct {
	local *LocalStore
	opts  Options
}

func NewStore(local *LocalStore, opts Options) *Store {
	if opts.SignedURLExpiry <= 0 {
		opts.SignedURLExpiry = 10 * time.Minute
	}

	opts.PublicBaseURL = strings.TrimSuffix(opts.PublicBaseURL, "/")

	return &Store{local: local, opts: opts}
}

// ObjectStorageEnabled reports whether uploads go to the bucket.
func (s *Store) ObjectStorageEnabled() bool {
	return s.opts.Object != nil
}

// Upload stores f under purpose and returns its reference.
func (s *Store) Upload(ctx context.Context, purpose string, f File) (string, error) {
	key := NewKey(purpose, f.Name)

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if s.opts.Object != nil {
		if err := s.opts.Object.Put(ctx, key, f.Body, f.Size, contentType); err != nil {
			return "", apperr.Storage("Failed to upload file", err)
		}

		return ObjectPrefix + key, nil
	}

	ref, err := s.local.Put(key, f.Body)
	if err != nil {
		return "", apperr.Storage("Failed to upload file", err)
	}

	return ref, nil
}

// UploadAll stores files in order and returns their references in the same
// order. On failure the already stored files are removed.
func (s *Store) UploadAll(ctx context.Context, purpose string, files []File) ([]string, error) {
	refs := make([]string, 0, len(files))

	for _, f := range files {
		ref, err := s.Upload(ctx, purpose, f)
		if err != nil {
			for _, r := range refs {
				s.RemoveQuietly(ctx, r)
			}

			return nil, err
		}

		refs = append(refs, ref)
	}

	return refs, nil
}

// Remove deletes the blob behind ref.
func (s *Store) Remove(ctx context.Context, ref string) error {
	if key, ok := strings.CutPrefix(ref, ObjectPrefix); ok {
		if s.opts.Object == nil {
			return fmt.Errorf("object storage is not configured")
		}

		return s.opts.Object.Delete(ctx, key)
	}

	return s.local.Delete(ref)
}

// RemoveQuietly is Remove for best-effort cleanups.
func (s *Store) RemoveQuietly(ctx context.Context, ref string) {
	if err := s.Remove(ctx, ref); err != nil {
		slog.Warn("failed to remove media", "ref", ref, "error", err)
	}
}

// Resolve maps each reference to a URL the browser can load. The result is
// index aligned with refs; entries that cannot be resolved are nil.
func (s *Store) Resolve(ctx context.Context, refs []string) []*string {
	out := make([]*string, len(refs))

	for i, ref := range refs {
		if u, ok := s.resolve(ctx, ref); ok {
			out[i] = &u
		}
	}

	return out
}

// ResolveOne is Resolve for a single reference; it returns "" when ref cannot
// be resolved.
func (s *Store) ResolveOne(ctx context.Context, ref string) string {
	u, _ := s.resolve(ctx, ref)
	return u
}

func (s *Store) resolve(ctx context.Context, ref string) (string, bool) {
	if ref == "" {
		return "", false
	}

	key, ok := strings.CutPrefix(ref, ObjectPrefix)
	if !ok {
		return ref, true
	}

	if s.opts.Object == nil || key == "" {
		return "", false
	}

	if s.opts.SignedURLs || s.opts.PublicBaseURL == "" {
		u, err := s.opts.Object.PresignGet(ctx, key, s.opts.SignedURLExpiry)
		if err != nil {
			slog.Warn("failed to sign media url", "key", key, "error", err)
			return "", false
		}

		return u, true
	}

	return s.opts.PublicBaseURL + "/" + key, true
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9]`)

// NewKey builds "{purpose}/{ulid}-{name}.{ext}" from an uploaded filename.
func NewKey(purpose, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))

	ext := "bin"
	name := base

	if i := strings.LastIndex(base, "."); i > 0 && i < len(base)-1 {
		ext = unsafeChars.ReplaceAllString(strings.ToLower(base[i+1:]), "")
		name = base[:i]
	}

	if ext == "" {
		ext = "bin"
	}

	name = unsafeChars.ReplaceAllString(strings.ToLower(name), "-")
	if len(name) > 50 {
		name = name[:50]
	}

	if strings.Trim(name, "-") == "" {
		name = "file"
	}

	return fmt.Sprintf("%s/%s-%s.%s", purpose, strings.ToLower(ulid.Make().String()), name, ext)
}
