package configdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_MergeRespectsPriority(t *testing.T) {
	snap := Defaults()
	snap.Merge(Snapshot{
		KeyAPIURL: {Key: KeyAPIURL, Value: "https://file.example", Source: "file", Priority: 3},
	})
	snap.Merge(Snapshot{
		KeyAPIURL: {Key: KeyAPIURL, Value: "https://env.example", Source: "env", Priority: 2},
	})
	snap.Merge(Snapshot{
		KeyAPIURL: {Key: KeyAPIURL, Value: "https://late-file.example", Source: "file", Priority: 3},
	})

	assert.Equal(t, "https://env.example", snap[KeyAPIURL].Value)
	assert.Equal(t, "env", snap[KeyAPIURL].Source)
}

func TestSnapshot_ToConfig(t *testing.T) {
	snap := Defaults()
	snap.Merge(Snapshot{
		KeyChatterinoPath: {Key: KeyChatterinoPath, Value: "/opt/chatterino", Priority: 1},
		KeyDebug:          {Key: KeyDebug, Value: "not-a-bool", Priority: 1},
	})

	cfg := snap.ToConfig()
	assert.Equal(t, "/opt/chatterino", cfg.ChatterinoPath)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.False(t, cfg.Debug)
}
