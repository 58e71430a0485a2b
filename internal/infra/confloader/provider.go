package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported by map provider, use Read() instead")

// mapProvider is a koanf provider over a map with dotted keys.
type mapProvider map[string]any

// ReadBytes returns an error as map provider doesn't support byte serialization.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the configuration as a nested map.
func (m mapProvider) Read() (map[string]any, error) {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return maps.Unflatten(cp, delim), nil
}
