package store

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"eTEats_web/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "recipes")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "recipes", []byte(`[{"name":"a"}]`)))
	got, err := s.Get(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"a"}]`, string(got))

	require.NoError(t, s.Put(ctx, "recipes", []byte(`[]`)))
	got, err = s.Get(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got), "last write wins")

	require.NoError(t, s.Delete(ctx, "recipes"))
	_, err = s.Get(ctx, "recipes")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "missing"), "deleting an absent key is not an error")
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	value := []byte("abc")
	require.NoError(t, m.Put(context.Background(), "k", value))
	value[0] = 'x'

	got, err := m.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLite(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "recipes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	testStore(t, s)
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.db")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "recipes", []byte("[1,2]")))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Get(ctx, "recipes")
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(got))
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite("  ")
	assert.Error(t, err)
}

// fakeObjects is an in-memory ObjectAPI.
type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3(t *testing.T) {
	api := &fakeObjects{objects: map[string][]byte{}}
	s := NewS3(api, "bucket", "cache/")
	testStore(t, s)

	require.NoError(t, s.Put(context.Background(), "recipes", []byte("[]")))
	assert.Contains(t, api.objects, "bucket/cache/recipes.json")
}

func TestDocID(t *testing.T) {
	assert.Equal(t, "recipes", docID("recipes"))
	assert.Equal(t, "a_b", docID("a/b"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.Config{Store: config.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	s, err = Open(ctx, config.Config{Store: "SQLite", SQLitePath: filepath.Join(t.TempDir(), "r.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.Config{Store: "redis"})
	assert.Error(t, err)
}
