package pkgconfig

import "time"

// Config reads configuration values by key.
//
// Implementations return the zero value when a key is missing or when the
// stored value cannot be converted to the requested type, so callers never
// have to distinguish "absent" from "zero".
type Config interface {
	GetInt(key string) int64
	GetBool(key string) bool
	GetFloat(key string) float64
	GetString(key string) string
	GetDuration(key string) time.Duration
	GetBinary(key string) []byte
	GetArray(key string) []string
	GetMap(key string) map[string]string

	// Close releases any resources held by the implementation.
	Close() error
}
