package blob

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Ref is a content-addressed reference to a blob held by a Store, mirroring
// the teacher's BlobRef. It is the value a caller embeds in its own Object
// tree (e.g. as a String node) in place of the payload itself.
type Ref struct {
	CID   string // "sha256:<hex>"
	MIME  string
	Bytes int64 // uncompressed size
	Name  string
}

// Options configures a Store's compression level.
type Options struct {
	Level zstd.EncoderLevel
}

// DefaultOptions returns the Store default: zstd's balanced "default" level.
func DefaultOptions() Options {
	return Options{Level: zstd.SpeedDefault}
}

type entry struct {
	compressed []byte
	mime       string
	size       int64
}

// Store is an in-memory, content-addressed, zstd-compressed blob registry.
// It is safe for concurrent use.
type Store struct {
	opts Options
	enc  *zstd.Encoder
	dec  *zstd.Decoder

	mu    sync.RWMutex
	blobs map[string]entry
}

// NewStore creates a Store with the given options. The returned Store owns
// a zstd encoder/decoder pair for its lifetime; callers should not share a
// Store across unrelated goroups expecting independent compression state
// (the encoder/decoder themselves are safe for concurrent use).
func NewStore(opts Options) (*Store, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("blob: new encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("blob: new decoder: %w", err)
	}
	return &Store{
		opts:  opts,
		enc:   enc,
		dec:   dec,
		blobs: make(map[string]entry),
	}, nil
}

// Close releases the Store's zstd encoder/decoder resources.
func (s *Store) Close() error {
	s.dec.Close()
	return s.enc.Close()
}

// computeCID hashes content with SHA-256, matching the teacher's
// ComputeCID.
func computeCID(content []byte) string {
	sum := sha256.Sum256(content)
	return "sha256:" + hex.EncodeToString(sum[:])
}

// Put compresses and stores content under its CID, returning a Ref. Storing
// the same content twice (even under a different MIME/Name) returns a Ref
// for the first Put's CID entry; content addressing is intentionally
// insensitive to metadata.
func (s *Store) Put(content []byte, mime, name string) Ref {
	cid := computeCID(content)
	ref := Ref{CID: cid, MIME: mime, Bytes: int64(len(content)), Name: name}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[cid]; ok {
		return ref
	}
	s.blobs[cid] = entry{
		compressed: s.enc.EncodeAll(content, nil),
		mime:       mime,
		size:       int64(len(content)),
	}
	return ref
}

// Get decompresses and returns the content stored under cid.
func (s *Store) Get(cid string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.blobs[cid]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("blob: not found: %s", cid)
	}
	content, err := s.dec.DecodeAll(e.compressed, make([]byte, 0, e.size))
	if err != nil {
		return nil, fmt.Errorf("blob: decompress %s: %w", cid, err)
	}
	return content, nil
}

// Has reports whether cid is present.
func (s *Store) Has(cid string) bool {
	s.mu.RLock()
	_, ok := s.blobs[cid]
	s.mu.RUnlock()
	return ok
}

// Meta returns stored metadata without decompressing the body.
func (s *Store) Meta(cid string) (mime string, bytes int64, err error) {
	s.mu.RLock()
	e, ok := s.blobs[cid]
	s.mu.RUnlock()
	if !ok {
		return "", 0, fmt.Errorf("blob: not found: %s", cid)
	}
	return e.mime, e.size, nil
}
