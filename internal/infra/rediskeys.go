package infra

const (
	// RedisNamespace Базовый префикс для изоляции данных проекта в Redis
	RedisNamespace = "snortview"
)

const (
	// RedisKeySessionPrefix + jti — запись о живой сессии (аналог ключа "user" в браузере)
	RedisKeySessionPrefix = RedisNamespace + ":session:"
	// RedisKeyDatabaseSettings — hash со строковыми записями db_host, db_port, ...
	RedisKeyDatabaseSettings = RedisNamespace + ":settings:database"
	// RedisKeyAuditLog — list событий аудита, новые слева
	RedisKeyAuditLog = RedisNamespace + ":audit"
	// RedisKeyStatsPrefix + отпечаток набора + диапазон дат — закэшированный DashboardStats
	RedisKeyStatsPrefix = RedisNamespace + ":stats:"
)

func SessionKey(jti string) string {
	return RedisKeySessionPrefix + jti
}

// StatsKey строит ключ кэша по отпечатку набора алертов и границам диапазона, пустая граница — "*".
// Без отпечатка экземпляр с другим seed прочитал бы чужую статистику.
func StatsKey(dataset, start, end string) string {
	if start == "" {
		start = "*"
	}
	if end == "" {
		end = "*"
	}
	return RedisKeyStatsPrefix + dataset + ":" + start + ":" + end
}
