package sparse

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/hupe1980/catsim/internal/conv"
	"github.com/hupe1980/catsim/internal/hash"
	"github.com/hupe1980/catsim/model"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression used by Encode.
type Compression uint8

const (
	// CompressionNone stores blocks uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// ParseCompression maps a name ("none", "lz4", "zstd") to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

// File layout:
//
//	header  [magic "CSIM"][version u16][compression u8][pad u8][n u32][nnz u64][crc32c u32]
//	blocks  [uncompressed u32][compressed u32][data...]   (compressed == 0: raw)
//
// The uncompressed payload is indptr (n+1 × u64), indices (nnz × u32) and
// data (nnz × float64 bits), all little endian.
const (
	formatVersion   = 1
	headerSize      = 24
	blockHeaderSize = 8
	defaultBlock    = 256 * 1024
)

var magic = [4]byte{'C', 'S', 'I', 'M'}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// MarshalBinary encodes the matrix with LZ4 compression.
func (m *Matrix) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Encode(&buf, CompressionLZ4); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes data produced by MarshalBinary or Encode into m.
func (m *Matrix) UnmarshalBinary(data []byte) error {
	out, err := Decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*m = *out
	return nil
}

// Encode writes the matrix to w using the given block compression.
func (m *Matrix) Encode(w io.Writer, c Compression) error {
	n, err := conv.IntToUint32(m.n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOverflow, err)
	}
	payload := m.payload()

	var hdr [headerSize]byte
	copy(hdr[0:4], magic[:])
	binary.LittleEndian.PutUint16(hdr[4:], formatVersion)
	hdr[6] = byte(c)
	binary.LittleEndian.PutUint32(hdr[8:], n)
	binary.LittleEndian.PutUint64(hdr[12:], uint64(len(m.data)))
	binary.LittleEndian.PutUint32(hdr[20:], hash.CRC32C(payload))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	for off := 0; off < len(payload); off += defaultBlock {
		end := min(off+defaultBlock, len(payload))
		block, err := compressBlock(payload[off:end], c)
		if err != nil {
			return err
		}
		if _, err := w.Write(block); err != nil {
			return err
		}
	}
	return nil
}

func (m *Matrix) payload() []byte {
	nnz := len(m.data)
	buf := make([]byte, 8*(m.n+1)+4*nnz+8*nnz)
	off := 0
	for _, p := range m.indptr {
		binary.LittleEndian.PutUint64(buf[off:], uint64(p))
		off += 8
	}
	for _, c := range m.indices {
		binary.LittleEndian.PutUint32(buf[off:], uint32(c))
		off += 4
	}
	for _, v := range m.data {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v))
		off += 8
	}
	return buf
}

// Decode reads a matrix written by Encode.
func Decode(r io.Reader) (*Matrix, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if !bytes.Equal(hdr[0:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := binary.LittleEndian.Uint16(hdr[4:]); v != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
	}
	c := Compression(hdr[6])
	n, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(hdr[8:]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	nnz64 := binary.LittleEndian.Uint64(hdr[12:])
	want := binary.LittleEndian.Uint32(hdr[20:])
	if nnz64 > uint64(math.MaxInt32) {
		return nil, fmt.Errorf("%w: nnz %d", ErrCorrupt, nnz64)
	}
	nnz := int(nnz64)

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	payload, err := decompressAll(body, c)
	if err != nil {
		return nil, err
	}
	if got := hash.CRC32C(payload); got != want {
		return nil, fmt.Errorf("%w: got %08x, want %08x", ErrChecksumMismatch, got, want)
	}
	if len(payload) != 8*(n+1)+12*nnz {
		return nil, fmt.Errorf("%w: payload size %d", ErrCorrupt, len(payload))
	}

	m := &Matrix{
		n:       n,
		indptr:  make([]int, n+1),
		indices: make([]model.ItemIndex, nnz),
		data:    make([]float64, nnz),
	}
	off := 0
	for i := range m.indptr {
		p, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(payload[off:]))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		m.indptr[i] = p
		off += 8
	}
	for i := range m.indices {
		m.indices[i] = model.ItemIndex(binary.LittleEndian.Uint32(payload[off:]))
		off += 4
	}
	for i := range m.data {
		m.data[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[off:]))
		off += 8
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matrix) validate() error {
	if m.indptr[0] != 0 || m.indptr[m.n] != len(m.data) {
		return fmt.Errorf("%w: row pointers", ErrCorrupt)
	}
	for i := 0; i < m.n; i++ {
		if m.indptr[i] > m.indptr[i+1] {
			return fmt.Errorf("%w: row %d pointers decrease", ErrCorrupt, i)
		}
	}
	for _, c := range m.indices {
		if int(c) >= m.n {
			return fmt.Errorf("%w: column %d", ErrIndexOutOfRange, c)
		}
	}
	return nil
}

// compressBlock returns the block with its header. Blocks that do not shrink
// below 90% are stored raw.
func compressBlock(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err != nil {
			return nil, err
		}
		compressed = dst[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("unsupported compression %v", c)
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		out := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
		copy(out[blockHeaderSize:], data)
		return out, nil
	}

	out := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	copy(out[blockHeaderSize:], compressed)
	return out, nil
}

func decompressAll(body []byte, c Compression) ([]byte, error) {
	var out []byte
	for off := 0; off < len(body); {
		if off+blockHeaderSize > len(body) {
			return nil, fmt.Errorf("%w: truncated block header", ErrCorrupt)
		}
		rawSize := int(binary.LittleEndian.Uint32(body[off:]))
		compSize := int(binary.LittleEndian.Uint32(body[off+4:]))
		off += blockHeaderSize

		if compSize == 0 {
			if off+rawSize > len(body) {
				return nil, fmt.Errorf("%w: block extends beyond data", ErrCorrupt)
			}
			out = append(out, body[off:off+rawSize]...)
			off += rawSize
			continue
		}

		if off+compSize > len(body) {
			return nil, fmt.Errorf("%w: compressed block extends beyond data", ErrCorrupt)
		}
		src := body[off : off+compSize]
		off += compSize

		switch c {
		case CompressionLZ4:
			dst := make([]byte, rawSize)
			n, err := lz4.UncompressBlock(src, dst)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
			}
			if n != rawSize {
				return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
			}
			out = append(out, dst...)
		case CompressionZSTD:
			dec := getZstdDecoder()
			decoded, err := dec.DecodeAll(src, make([]byte, 0, rawSize))
			zstdDecoderPool.Put(dec)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
			}
			if len(decoded) != rawSize {
				return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
			}
			out = append(out, decoded...)
		default:
			return nil, fmt.Errorf("%w: compressed block with compression %v", ErrCorrupt, c)
		}
	}
	return out, nil
}
