// Пакет service — бизнес-логика Files Manager.
// MetadataCache — LRU-кэш записей файлов с TTL.
// Обёртка над hashicorp/golang-lru/v2/expirable.
package service

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/gofilesmanager/internal/domain/model"
)

// Prometheus-метрики кэша.
var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_cache_hits_total",
		Help: "Общее количество попаданий в LRU-кэш метаданных.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fm_cache_misses_total",
		Help: "Общее количество промахов LRU-кэша метаданных.",
	})
)

// MetadataCache — LRU-кэш записей файлов с автоматическим TTL.
// Каждый экземпляр сервиса имеет собственный in-memory кэш.
// Кэш ключуется идентификатором записи; проверку владельца выполняет
// вызывающий код заново для каждой выдачи.
type MetadataCache struct {
	cache *expirable.LRU[string, *model.FileRecord]
}

// NewMetadataCache создаёт LRU-кэш с указанным максимальным размером и TTL.
// maxSize — максимальное количество записей в кэше.
// ttl — время жизни записи после добавления.
func NewMetadataCache(maxSize int, ttl time.Duration) *MetadataCache {
	cache := expirable.NewLRU[string, *model.FileRecord](maxSize, nil, ttl)
	return &MetadataCache{cache: cache}
}

// Get возвращает запись из кэша по идентификатору.
// Возвращает (запись, true) при hit или (nil, false) при miss.
// Обновляет Prometheus-метрики hit/miss.
func (c *MetadataCache) Get(id string) (*model.FileRecord, bool) {
	val, ok := c.cache.Get(id)
	if ok {
		cacheHitsTotal.Inc()
		return val, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Set добавляет или обновляет запись в кэше.
func (c *MetadataCache) Set(id string, record *model.FileRecord) {
	c.cache.Add(id, record)
}
