// Package cache provides MemoryCacheProvider, a reference in-memory
// implementation of provider.CacheProvider.
//
// # Quick Start
//
//	policy := cache.Policy{MaxTTL: time.Hour}
//	mem := cache.NewMemoryCacheProvider(policy)
//
//	eng, _ := engine.New(engine.Config{
//	    DatabaseProvider: myDB,
//	    CacheProvider:    mem,
//	})
//
// # Thread Safety
//
// MemoryCacheProvider is safe for concurrent use; a sync.RWMutex guards
// its entry map.
//
// # Limitations
//
// Search is a naive case-insensitive substring match over every
// currently-cached entry's title/description/ID. It exists so
// MemoryCacheProvider can stand in for the cache branch of a hybrid
// search in tests and small deployments; it is not a real index.
package cache
