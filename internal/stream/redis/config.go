package redis

type RedisStreamConfig struct {
	RedisAddr     string
	RedisPassword string
	InStream      string
	OutStream     string
	Group         string
	ConsumerName  string
}

func NewRedisStreamConfig(redisAddr string, redisPassword string, inStream string, outStream string, group string, consumerName string) *RedisStreamConfig {
	return &RedisStreamConfig{
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		InStream:      inStream,
		OutStream:     outStream,
		Group:         group,
		ConsumerName:  consumerName,
	}
}
