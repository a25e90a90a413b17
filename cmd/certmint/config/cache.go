package config

// cacheConf holds configuration for the verification cache backend.
// If RedisAddr is empty, an in-memory cache is used.
type cacheConf struct {
	RedisAddr string `yaml:"redis_addr"`
}
