package media_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowquote/flowquote/internal/apperr"
	"github.com/flowquote/flowquote/internal/media"
)

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string]string
	putErr  error
	signErr error
}

func (f *fakeObjects) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if f.putErr != nil {
		return f.putErr
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.objects == nil {
		f.objects = map[string]string{}
	}

	f.objects[key] = string(b)

	return nil
}

func (f *fakeObjects) PresignGet(_ context.Context, key string, expiry time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}

	return "https://signed.example/" + key + "?exp=" + expiry.String(), nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, key)

	return nil
}

func file(name, body string) media.File {
	return media.File{Name: name, ContentType: "image/png", Size: int64(len(body)), Body: strings.NewReader(body)}
}

func TestNewKey(t *testing.T) {
	type testCase struct {
		name     string
		purpose  string
		filename string
		want     string
	}

	tests := []testCase{
		{name: "Simple", purpose: "requests", filename: "Photo 1.JPG", want: `^requests/[0-9a-z]{26}-photo-1\.jpg$`},
		{name: "NoExtension", purpose: "logos", filename: "logo", want: `^logos/[0-9a-z]{26}-logo\.bin$`},
		{name: "PathStripped", purpose: "requests", filename: `C:\Users\me\leak.png`, want: `^requests/[0-9a-z]{26}-leak\.png$`},
		{name: "OnlySymbols", purpose: "requests", filename: "???.webp", want: `^requests/[0-9a-z]{26}-file\.webp$`},
		{name: "LongName", purpose: "requests", filename: strings.Repeat("a", 80) + ".png", want: `^requests/[0-9a-z]{26}-a{50}\.png$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Regexp(t, regexp.MustCompile(tt.want), media.NewKey(tt.purpose, tt.filename))
		})
	}
}

func TestUploadAll_LocalPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	store := media.NewStore(media.NewLocalStore(dir, "/uploads"), media.Options{})

	refs, err := store.UploadAll(context.Background(), media.PurposeRequests, []media.File{
		file("first.png", "one"),
		file("second.png", "two"),
	})
	require.NoError(t, err)
	require.Len(t, refs, 2)

	assert.Contains(t, refs[0], "-first.png")
	assert.Contains(t, refs[1], "-second.png")

	for i, want := range []string{"one", "two"} {
		require.True(t, strings.HasPrefix(refs[i], "/uploads/requests/"))

		b, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(refs[i], "/uploads/")))
		require.NoError(t, err)
		assert.Equal(t, want, string(b))
	}

	require.NoError(t, store.Remove(context.Background(), refs[0]))

	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(refs[0], "/uploads/")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestUpload_ObjectStore(t *testing.T) {
	objects := &fakeObjects{}
	store := media.NewStore(media.NewLocalStore(t.TempDir(), "/uploads"), media.Options{Object: objects})

	ref, err := store.Upload(context.Background(), media.PurposeLogos, file("logo.png", "png"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, "r2:logos/"))
	assert.Equal(t, "png", objects.objects[strings.TrimPrefix(ref, "r2:")])

	require.NoError(t, store.Remove(context.Background(), ref))
	assert.Empty(t, objects.objects)
}

func TestUploadAll_FailureIsStorageError(t *testing.T) {
	objects := &fakeObjects{putErr: errors.New("bucket unavailable")}
	store := media.NewStore(media.NewLocalStore(t.TempDir(), "/uploads"), media.Options{Object: objects})

	_, err := store.UploadAll(context.Background(), media.PurposeRequests, []media.File{file("a.png", "a")})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrStorage)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	local := media.NewLocalStore(t.TempDir(), "/uploads")

	t.Run("PublicURLs", func(t *testing.T) {
		store := media.NewStore(local, media.Options{Object: &fakeObjects{}, PublicBaseURL: "https://cdn.example/"})

		got := store.Resolve(ctx, []string{"/uploads/requests/a.png", "r2:requests/b.png", "", "r2:"})
		require.Len(t, got, 4)

		require.NotNil(t, got[0])
		assert.Equal(t, "/uploads/requests/a.png", *got[0])
		require.NotNil(t, got[1])
		assert.Equal(t, "https://cdn.example/requests/b.png", *got[1])
		assert.Nil(t, got[2])
		assert.Nil(t, got[3])
	})

	t.Run("SignedURLs", func(t *testing.T) {
		store := media.NewStore(local, media.Options{Object: &fakeObjects{}, SignedURLs: true})

		got := store.Resolve(ctx, []string{"r2:logos/x.png"})
		require.NotNil(t, got[0])
		assert.Equal(t, "https://signed.example/logos/x.png?exp=10m0s", *got[0])
	})

	t.Run("SigningFailureIsNull", func(t *testing.T) {
		store := media.NewStore(local, media.Options{Object: &fakeObjects{signErr: errors.New("boom")}, SignedURLs: true})

		got := store.Resolve(ctx, []string{"r2:logos/x.png", "/uploads/ok.png"})
		assert.Nil(t, got[0])
		require.NotNil(t, got[1])
	})

	t.Run("ObjectStorageDisabled", func(t *testing.T) {
		store := media.NewStore(local, media.Options{})

		got := store.Resolve(ctx, []string{"r2:logos/x.png"})
		assert.Nil(t, got[0])
		assert.Empty(t, store.ResolveOne(ctx, "r2:logos/x.png"))
	})
}

func TestLocalStore_DeleteRejectsForeignPaths(t *testing.T) {
	local := media.NewLocalStore(t.TempDir(), "uploads/")

	assert.Error(t, local.Delete("/elsewhere/file.png"))
	assert.Error(t, local.Delete("/uploads/../../etc/passwd"))
	assert.NoError(t, local.Delete("/uploads/requests/missing.png"))
}
