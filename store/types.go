package store

import "github.com/iov-one/pairswap"

// Move references for all storage types into this package
// for shorter names everywhere

type (
	ReadOnlyKVStore  = pairswap.ReadOnlyKVStore
	SetDeleter       = pairswap.SetDeleter
	KVStore          = pairswap.KVStore
	Batch            = pairswap.Batch
	Iterator         = pairswap.Iterator
	CacheableKVStore = pairswap.CacheableKVStore
	KVCacheWrap      = pairswap.KVCacheWrap
)
