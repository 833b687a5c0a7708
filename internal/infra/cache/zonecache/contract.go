package zonecache

// Metrics счетчик попаданий в кэш
type Metrics interface {
	ObserveZoneCache(hit bool)
}
