package domain

import (
	"strconv"
)

// Ключи хранилища настроек БД, каждое поле — отдельная строка
const (
	SettingDBHost     = "db_host"
	SettingDBPort     = "db_port"
	SettingDBName     = "db_name"
	SettingDBUsername = "db_username"
	SettingDBPassword = "db_password"
	SettingDBSSL      = "db_ssl"
)

const DefaultDatabasePort = 3306

var DatabaseSettingKeys = []string{
	SettingDBHost, SettingDBPort, SettingDBName,
	SettingDBUsername, SettingDBPassword, SettingDBSSL,
}

type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"password"`
	SSL      bool   `json:"ssl"`
}

type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Entries раскладывает конфиг в строковые записи для хранилища
func (c DatabaseConfig) Entries() map[string]string {
	return map[string]string{
		SettingDBHost:     c.Host,
		SettingDBPort:     strconv.Itoa(c.Port),
		SettingDBName:     c.Database,
		SettingDBUsername: c.Username,
		SettingDBPassword: c.Password,
		SettingDBSSL:      strconv.FormatBool(c.SSL),
	}
}

// DatabaseConfigFromEntries — обратная операция к Entries.
// Пустой или битый порт заменяем на DefaultDatabasePort, ssl включен только для "true".
func DatabaseConfigFromEntries(e map[string]string) DatabaseConfig {
	port, err := strconv.Atoi(e[SettingDBPort])
	if err != nil || port == 0 {
		port = DefaultDatabasePort
	}
	return DatabaseConfig{
		Host:     e[SettingDBHost],
		Port:     port,
		Database: e[SettingDBName],
		Username: e[SettingDBUsername],
		Password: e[SettingDBPassword],
		SSL:      e[SettingDBSSL] == "true",
	}
}

// MissingRequired — не заполнены обязательные поля (host, database, username)
func (c DatabaseConfig) MissingRequired() bool {
	return c.Host == "" || c.Database == "" || c.Username == ""
}
