package configinfra

import (
	"context"
	"os"
	"strconv"

	configdomain "github.com/chatterino-tools/cpm/internal/core/domain/config"
	configports "github.com/chatterino-tools/cpm/internal/core/ports/config"
)

const (
	EnvChatterinoPath = "CPM_CHATTERINO_PATH"
	EnvAPIURL         = "CPM_API_URL"
	EnvDebug          = "CPM_DEBUG"
	EnvConfigFile     = "CPM_CONFIG_FILE"
)

type EnvLoader struct {
	getenv func(string) string
}

func NewEnvLoader() *EnvLoader { return &EnvLoader{getenv: os.Getenv} }

func (l *EnvLoader) Name() string { return "env" }

// Load implements Loader by returning the environment snapshot.
func (l *EnvLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	return l.LoadEnv(), nil
}

// LoadEnv builds a snapshot from CPM_* environment variables (priority 2).
func (l *EnvLoader) LoadEnv() configdomain.Snapshot {
	snap := make(configdomain.Snapshot)
	add := func(key, field string, convert func(string) (interface{}, bool)) {
		v := l.getenv(key)
		if v == "" {
			return
		}
		val := interface{}(v)
		if convert != nil {
			var ok bool
			if val, ok = convert(v); !ok {
				return
			}
		}
		snap[field] = configdomain.Entry{Key: field, Value: val, Source: "env", SourcePath: key, Priority: 2}
	}

	add(EnvChatterinoPath, configdomain.KeyChatterinoPath, nil)
	add(EnvAPIURL, configdomain.KeyAPIURL, nil)
	add(EnvDebug, configdomain.KeyDebug, func(s string) (interface{}, bool) {
		b, err := strconv.ParseBool(s)
		return b, err == nil
	})

	return snap
}

var _ configports.Loader = (*EnvLoader)(nil)
