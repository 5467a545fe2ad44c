package configinfra

import (
	"context"

	configdomain "github.com/chatterino-tools/cpm/internal/core/domain/config"
	configports "github.com/chatterino-tools/cpm/internal/core/ports/config"
)

// StaticLoader serves a fixed snapshot, used for command line flags (priority 1)
type StaticLoader struct {
	name string
	snap configdomain.Snapshot
}

func NewFlagLoader(values map[string]interface{}) *StaticLoader {
	snap := make(configdomain.Snapshot, len(values))
	for k, v := range values {
		snap[k] = configdomain.Entry{Key: k, Value: v, Source: "flag", SourcePath: "--" + k, Priority: 1}
	}
	return &StaticLoader{name: "flags", snap: snap}
}

func (l *StaticLoader) Name() string { return l.name }

func (l *StaticLoader) Load(ctx context.Context) (configdomain.Snapshot, error) {
	return l.snap, nil
}

var _ configports.Loader = (*StaticLoader)(nil)
