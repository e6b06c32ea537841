/*

Options of the memcached session store and their loading from maps and files.

*/

package memsession

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultHost is the memcached address used when neither a client nor hosts are given.
const DefaultHost = "127.0.0.1:11211"

// MemcacheStoreOptions defines options that may be passed when creating a new MemcacheStore.
// All fields are optional; default value will be used for any field that has the zero value.
type MemcacheStoreOptions struct {
	// Addresses of the memcached servers, used only if Client is nil;
	// default value is DefaultHost.
	Hosts []string `mapstructure:"hosts"`

	// Prefix to use in front of session ids to construct the cache key;
	// default value is the empty string.
	Prefix string `mapstructure:"prefix"`

	// Socket read/write timeout of the constructed client;
	// default value is the client's own default.
	Timeout time.Duration `mapstructure:"timeout"`

	// Maximum number of idle connections kept per server by the constructed client;
	// default value is the client's own default.
	MaxIdleConns int `mapstructure:"maxIdleConns"`

	// Any other configuration, handed to NewClient untouched.
	Extra map[string]interface{} `mapstructure:",remain"`

	// Pre-built client. If set, Hosts, Timeout, MaxIdleConns and NewClient are not used.
	Client Client `mapstructure:"-"`

	// Constructs the client from the comma-joined hosts and these options;
	// default value is NewMemcacheClient.
	NewClient func(servers string, o *MemcacheStoreOptions) Client `mapstructure:"-"`

	// Codec used to marshal and unmarshal sessions; default value is JSONCodec.
	Codec Codec `mapstructure:"-"`

	// Logger to log store operations to; default value is slog.Default().
	Logger *slog.Logger `mapstructure:"-"`

	// Metrics to record store operations in; nil disables recording.
	Metrics *Metrics `mapstructure:"-"`
}

// Pointer to zero value of MemcacheStoreOptions to be reused for efficiency.
var zeroMemcacheStoreOptions = new(MemcacheStoreOptions)

// OptionsFromMap decodes a loosely typed configuration object into MemcacheStoreOptions.
// Durations may be given as strings such as "250ms". Keys that do not name an option
// end up in Extra, except "client", which is taken as the pre-built client if it is one.
func OptionsFromMap(m map[string]interface{}) (*MemcacheStoreOptions, error) {
	o := &MemcacheStoreOptions{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     o,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("memsession: invalid options: %w", err)
	}

	if c, ok := o.Extra["client"].(Client); ok {
		o.Client = c
		delete(o.Extra, "client")
	}
	return o, nil
}

// LoadOptions reads MemcacheStoreOptions from a YAML file.
func LoadOptions(path string) (*MemcacheStoreOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("memsession: parse %s: %w", path, err)
	}
	return OptionsFromMap(m)
}
