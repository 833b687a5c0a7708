package zonecache

import "errors"

var (
	// ErrCacheRead ошибка чтения из Redis
	ErrCacheRead = errors.New("zonecache: failed to read")

	// ErrCacheWrite ошибка записи в Redis
	ErrCacheWrite = errors.New("zonecache: failed to write")
)
