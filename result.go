package catsim

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/hupe1980/catsim/blobstore"
	"github.com/hupe1980/catsim/codec"
	"github.com/hupe1980/catsim/model"
	"github.com/hupe1980/catsim/sparse"
)

const (
	// SimilarityBlob holds the encoded similarity matrix of a saved result.
	SimilarityBlob = "similarity.csim"
	// ItemsBlob holds the items and run metadata of a saved result.
	ItemsBlob = "items.json"
)

type itemsFile struct {
	RunID    string            `json:"run_id"`
	Weights  []uint32          `json:"weights"`
	Excluded []model.ItemIndex `json:"excluded"`
	Items    []model.Item      `json:"items"`
	Degree   []float64         `json:"degree"`
}

type saveOptions struct {
	compression sparse.Compression
	codec       codec.Codec
	logger      *Logger
}

// SaveOption configures SaveResult and LoadResult.
type SaveOption func(*saveOptions)

// WithCompression sets the block compression of the similarity matrix.
// Defaults to sparse.CompressionZSTD.
func WithCompression(c sparse.Compression) SaveOption {
	return func(o *saveOptions) { o.compression = c }
}

// WithCodec sets the codec of the items blob. Defaults to codec.Default.
func WithCodec(c codec.Codec) SaveOption {
	return func(o *saveOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithSaveLogger sets the logger used by SaveResult.
func WithSaveLogger(l *Logger) SaveOption {
	return func(o *saveOptions) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

func newSaveOptions(opts []SaveOption) saveOptions {
	o := saveOptions{compression: sparse.CompressionZSTD, codec: codec.Default, logger: NoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SaveResult writes res under prefix as SimilarityBlob and ItemsBlob.
func SaveResult(ctx context.Context, store blobstore.Store, prefix string, res *Result, opts ...SaveOption) (err error) {
	o := newSaveOptions(opts)
	defer func() { o.logger.LogSave(ctx, prefix, err) }()

	w, err := store.Create(ctx, path.Join(prefix, SimilarityBlob))
	if err != nil {
		return fmt.Errorf("catsim: save similarity: %w", err)
	}
	if err := res.Similarity.Encode(w, o.compression); err != nil {
		_ = w.Close()
		return fmt.Errorf("catsim: save similarity: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("catsim: save similarity: %w", err)
	}

	data, err := o.codec.Marshal(itemsFile{
		RunID:    res.RunID,
		Weights:  res.Weights,
		Excluded: res.Excluded,
		Items:    res.Items,
		Degree:   res.Degree,
	})
	if err != nil {
		return fmt.Errorf("catsim: save items: %w", err)
	}
	if err := store.Put(ctx, path.Join(prefix, ItemsBlob), data); err != nil {
		return fmt.Errorf("catsim: save items: %w", err)
	}
	return nil
}

// LoadResult reads a result written by SaveResult. Level statistics are not
// persisted.
func LoadResult(ctx context.Context, store blobstore.Store, prefix string, opts ...SaveOption) (*Result, error) {
	o := newSaveOptions(opts)

	sim, err := LoadSimilarity(ctx, store, path.Join(prefix, SimilarityBlob))
	if err != nil {
		return nil, err
	}

	data, err := blobstore.ReadAll(ctx, store, path.Join(prefix, ItemsBlob))
	if err != nil {
		return nil, fmt.Errorf("catsim: load items: %w", err)
	}
	var f itemsFile
	if err := o.codec.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catsim: load items: %w", err)
	}
	if len(f.Items) != sim.N() {
		return nil, fmt.Errorf("catsim: load items: %w: %d items, %d matrix rows", sparse.ErrDimensionMismatch, len(f.Items), sim.N())
	}
	for i := range f.Items {
		f.Items[i].Index = model.ItemIndex(i)
	}

	return &Result{
		RunID:      f.RunID,
		Items:      f.Items,
		Similarity: sim,
		Degree:     f.Degree,
		Weights:    f.Weights,
		Excluded:   f.Excluded,
	}, nil
}

// LoadSimilarity decodes a similarity matrix blob.
func LoadSimilarity(ctx context.Context, store blobstore.Store, name string) (*sparse.Matrix, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("catsim: load similarity: %w", err)
	}
	sim, err := sparse.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("catsim: load similarity: %w", err)
	}
	return sim, nil
}
