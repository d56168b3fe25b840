// Package cache provides a small thread-safe LRU used to memoize fingerprints.
//
// Capacity is counted in entries. A capacity of zero disables caching: every
// Get misses and Set is a no-op. Hit and miss counters are kept with atomics so
// Stats never takes the lock.
package cache
