package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketFrames = []byte("frames")
	bucketMeta   = []byte("meta")
)

// frameMeta is stored alongside each frame for cache listings
type frameMeta struct {
	Size     int   `json:"size"`
	StoredAt int64 `json:"stored_at"`
}

// FrameStore implements domain.FrameStore using BoltDB.
type FrameStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewFrameStore opens the frame cache under cacheDir. An empty cacheDir
// keeps frames in memory only.
func NewFrameStore(cacheDir string) (*FrameStore, error) {
	if cacheDir == "" {
		// Memory-only mode (no persistence)
		return &FrameStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(cacheDir, "frames.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketFrames, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &FrameStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *FrameStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetFrame returns the cached bytes for url
func (s *FrameStore) GetFrame(url string) ([]byte, bool) {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[url]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketFrames)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(url)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[url] = data
	s.mu.Unlock()

	return data, true
}

// SaveFrame stores the bytes for url
func (s *FrameStore) SaveFrame(url string, data []byte) error {
	meta, err := json.Marshal(frameMeta{Size: len(data), StoredAt: time.Now().Unix()})
	if err != nil {
		return err
	}

	// Update memory cache
	s.mu.Lock()
	s.cache[url] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	// Write to BoltDB
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketFrames).Put([]byte(url), data); err != nil {
			return err
		}
		return tx.Bucket(bucketMeta).Put([]byte(url), meta)
	})
}

// InvalidateFrame removes url from the cache
func (s *FrameStore) InvalidateFrame(url string) {
	// Clear from memory cache
	s.mu.Lock()
	delete(s.cache, url)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete from BoltDB
	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketFrames, bucketMeta} {
			if b := tx.Bucket(bucket); b != nil {
				b.Delete([]byte(url))
			}
		}
		return nil
	})
}

// InvalidateAll wipes every cached frame
func (s *FrameStore) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	// Delete all data from all buckets
	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketFrames, bucketMeta} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Stats returns the number of persisted frames and their total size in bytes
func (s *FrameStore) Stats() (count int, size int64) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		for _, data := range s.cache {
			count++
			size += int64(len(data))
		}
		return count, size
	}

	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketMeta)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var meta frameMeta
			if json.Unmarshal(v, &meta) == nil {
				count++
				size += int64(meta.Size)
			}
			return nil
		})
	})
	return count, size
}
