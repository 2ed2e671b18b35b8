package database

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/pkg/errors"
)

// NewMemcached connects to memcached and verifies the connection.
func NewMemcached(server string) (*memcache.Client, error) {
	mc := memcache.New(server)
	if err := mc.Ping(); err != nil {
		return nil, errors.Wrapf(err, "failed to connect memcached %s", server)
	}
	return mc, nil
}
