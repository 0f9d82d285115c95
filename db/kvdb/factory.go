package kvdb

import "fmt"

// ClientFactory constructs a Client from Conf. See RegisterFactory.
type ClientFactory func(conf *Conf) (Client, error)

var registry = map[string]ClientFactory{}

func RegisterFactory(kvType string, factory ClientFactory) {
	registry[kvType] = factory
}

func New(kvType string, conf *Conf) (Client, error) {
	factory, ok := registry[kvType]
	if !ok {
		return nil, fmt.Errorf("kvdb: unsupported type %q", kvType)
	}
	return factory(conf)
}
