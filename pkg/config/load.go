// Package config загружает конфигурацию из переменных окружения и необязательного файла.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"
	msgInvalidConfiguration    = "configuration is invalid"

	errFailedLoadConfiguration = "failed to load configuration"
	errInvalidConfiguration    = "invalid configuration"

	attrService = "service"
	attrPath    = "path"
)

// Validator реализуется конфигурациями с семантической проверкой.
type Validator interface {
	Validate() error
}

// Load читает конфигурацию типа T. Если path не пуст, значения берутся из файла
// (yaml, json, toml, env) и перекрываются переменными окружения; иначе только из окружения.
// После загрузки вызывается Validate, если T его реализует.
func Load[T any](ctx context.Context, serviceName, path string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))
	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var cfg T

	var err error
	if path != "" {
		if _, statErr := os.Stat(path); statErr != nil {
			err = statErr
		} else {
			err = cleanenv.ReadConfig(path, &cfg)
		}
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	if v, ok := any(&cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			log.Error(ctx, msgInvalidConfiguration, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errInvalidConfiguration, err)
		}
	}

	log.Info(ctx, msgConfigurationLoaded)
	return &cfg, nil
}

// Usage возвращает описание переменных окружения для T.
func Usage[T any](header string) string {
	var cfg T
	text, err := cleanenv.GetDescription(&cfg, &header)
	if err != nil {
		return errors.Join(errors.New(header), err).Error()
	}
	return text
}
