package research

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/dgraph-io/badger/v3"
)

const DefaultCacheTTL = 24 * time.Hour

// Cache keeps research bundles in BadgerDB until their TTL expires.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

func OpenCache(dir string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open research cache: %w", err)
	}
	return &Cache{db: db, ttl: ttl}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// CacheKey hashes the request that produced a research bundle.
func CacheKey(info models.BusinessInfo, mode models.GenerationMode) string {
	b, _ := json.Marshal(struct {
		Info models.BusinessInfo   `json:"businessInfo"`
		Mode models.GenerationMode `json:"mode"`
	}{info, mode})
	sum := sha256.Sum256(b)
	return "research:" + hex.EncodeToString(sum[:])
}

func (c *Cache) Get(key string) (models.ResearchData, bool, error) {
	var data models.ResearchData
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &data)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.ResearchData{}, false, nil
	}
	if err != nil {
		return models.ResearchData{}, false, fmt.Errorf("read research cache: %w", err)
	}
	return data, true, nil
}

func (c *Cache) Put(key string, data models.ResearchData) error {
	b, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal research data: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), b).WithTTL(c.ttl))
	})
}
