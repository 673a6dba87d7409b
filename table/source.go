package table

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/hupe1980/catsim/blobstore"
	"github.com/hupe1980/catsim/codec"
	"github.com/hupe1980/catsim/resource"
)

// Source loads the table stored under a path. It is the boundary to
// whatever fetched and persisted the category hierarchy.
type Source interface {
	Load(ctx context.Context, path string) ([]Record, error)
}

// MemorySource serves tables held in memory, keyed by path.
type MemorySource map[string][]Record

// Load implements Source.
func (m MemorySource) Load(ctx context.Context, path string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recs, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return slices.Clone(recs), nil
}

// BlobSource reads tables from a blobstore.Store and decodes them by file
// extension.
type BlobSource struct {
	store blobstore.Store
	codec codec.Codec
	rc    *resource.Controller
}

// SourceOption configures a BlobSource.
type SourceOption func(*BlobSource)

// WithCodec sets the JSON codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) SourceOption {
	return func(s *BlobSource) { s.codec = c }
}

// WithController charges blob reads against the controller's I/O limit.
func WithController(rc *resource.Controller) SourceOption {
	return func(s *BlobSource) { s.rc = rc }
}

// NewBlobSource creates a BlobSource over store.
func NewBlobSource(store blobstore.Store, opts ...SourceOption) *BlobSource {
	s := &BlobSource{store: store, codec: codec.Default}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load implements Source.
func (s *BlobSource) Load(ctx context.Context, name string) ([]Record, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	data, err := s.read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("table: load %s: %w", name, err)
	}
	recs, err := Decode(format, data, s.codec)
	if err != nil {
		return nil, fmt.Errorf("table: load %s: %w", name, err)
	}
	return recs, nil
}

func (s *BlobSource) read(ctx context.Context, name string) ([]byte, error) {
	if s.rc == nil {
		return blobstore.ReadAll(ctx, s.store, name)
	}

	b, err := s.store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	size := b.Size()
	if m, ok := b.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		if err := s.rc.AcquireIO(ctx, len(data)); err != nil {
			return nil, err
		}
		return slices.Clone(data), nil
	}
	if r, ok := b.(blobstore.Ranger); ok && size > 0 {
		rc, err := r.ReadRange(ctx, 0, size)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(resource.NewRateLimitedReader(ctx, rc, s.rc))
	}

	buf := make([]byte, size)
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !(err == io.EOF && int64(n) == size) {
		return nil, err
	}
	if err := s.rc.AcquireIO(ctx, n); err != nil {
		return nil, err
	}
	return buf[:n], nil
}
