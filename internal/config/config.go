package config

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// Config: Настройки консольного калькулятора.
// Читаются из переменных среды и необязательного файла .env.
type Config struct {
	Format    string `mapstructure:"FORMAT"`    // "text" или "json"
	Precision int    `mapstructure:"PRECISION"` // Знаков после запятой, -1 - кратчайшая запись
	Verbose   bool   `mapstructure:"VERBOSE"`   // Писать ли служебный лог в stderr
}

// Load загружает конфигурацию из переданного экземпляра Viper.
// CLI привязывает к этому же экземпляру свои флаги, и они имеют приоритет над окружением.
func Load(v *viper.Viper) (*Config, error) {
	v.AddConfigPath(".")    // Искать файл конфигурации в текущей директории
	v.SetConfigName(".env") // Имя файла конфигурации
	v.SetConfigType("env")  // Тип файла - .env

	// Переменные окружения имеют приоритет над файлом.
	v.AutomaticEnv()

	// Если файла нет, это не ошибка.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Ошибка чтения файла конфигурации: %v", err)
		}
	}

	v.SetDefault("FORMAT", "text")
	v.SetDefault("PRECISION", -1)
	v.SetDefault("VERBOSE", false)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("невозможно распаковать конфигурацию: %w", err)
	}

	if cfg.Format != "text" && cfg.Format != "json" {
		return nil, fmt.Errorf("неизвестный формат вывода %q (ожидается text или json)", cfg.Format)
	}
	if cfg.Precision < -1 {
		return nil, fmt.Errorf("PRECISION не может быть меньше -1, получено %d", cfg.Precision)
	}

	log.Printf("Конфигурация успешно загружена: %+v", cfg)
	return cfg, nil
}
