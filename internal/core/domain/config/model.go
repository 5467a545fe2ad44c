package configdomain

// Keys understood by the configuration loaders
const (
	KeyChatterinoPath = "chatterino_path"
	KeyAPIURL         = "api_url"
	KeyDebug          = "debug"
)

// DefaultAPIURL is used when no source sets api_url
const DefaultAPIURL = "https://api.github.com"

// Entry represents a single configuration value with provenance and priority.
type Entry struct {
	Key        string
	Value      interface{}
	Source     string
	SourcePath string
	Priority   int
}

// Snapshot is a collection of config entries keyed by field name.
type Snapshot map[string]Entry

// Merge merges another snapshot into this one respecting priority
// (lower number indicates higher priority).
func (s Snapshot) Merge(other Snapshot) {
	for k, e := range other {
		if existing, ok := s[k]; !ok || e.Priority <= existing.Priority {
			s[k] = e
		}
	}
}

// Config is the resolved configuration of one command invocation
type Config struct {
	// ChatterinoPath overrides the platform default Chatterino directory
	ChatterinoPath string
	APIURL         string
	Debug          bool
}

// Defaults returns the lowest priority snapshot
func Defaults() Snapshot {
	return Snapshot{
		KeyAPIURL: {Key: KeyAPIURL, Value: DefaultAPIURL, Source: "default", Priority: 9},
		KeyDebug:  {Key: KeyDebug, Value: false, Source: "default", Priority: 9},
	}
}

// ToConfig converts a merged snapshot into a Config. Values of an
// unexpected type are ignored.
func (s Snapshot) ToConfig() Config {
	var cfg Config
	if v, ok := s[KeyChatterinoPath].Value.(string); ok {
		cfg.ChatterinoPath = v
	}
	if v, ok := s[KeyAPIURL].Value.(string); ok {
		cfg.APIURL = v
	}
	if v, ok := s[KeyDebug].Value.(bool); ok {
		cfg.Debug = v
	}
	return cfg
}
