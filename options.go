package versioned

import "encoding/json"

var defaultMarshal = json.Marshal

// Options controls the engine underneath a new, empty collection. Collections
// derived from it share its store and therefore its options.
type Options struct {
	// LookupCache, if set, remembers ancestor walks. See NewLookupCache.
	LookupCache LookupCache

	// Marshal encodes elements, keys and values for Digest. Defaults to JSON.
	Marshal func(interface{}) ([]byte, error)

	// Debug prints a trace of version creation.
	Debug bool
}

func (o *Options) marshal() func(interface{}) ([]byte, error) {
	if o == nil || o.Marshal == nil {
		return defaultMarshal
	}
	return o.Marshal
}

func (o *Options) cache() LookupCache {
	if o == nil {
		return nil
	}
	return o.LookupCache
}

func (o *Options) debug() bool {
	return o != nil && o.Debug
}
