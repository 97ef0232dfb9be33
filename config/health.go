package config

import (
	"context"
	"fmt"

	"github.com/jacentio/dbkit/registry"
)

// Health is the result of pinging one store.
type Health struct {
	Name string
	Type StoreType
	Err  error
}

// OK reports whether the ping succeeded.
func (h Health) OK() bool { return h.Err == nil }

// StoreInfo describes a configured store and what the registry holds for it.
type StoreInfo struct {
	Name       string
	Type       StoreType
	PoolSize   int // 0 when no hint was given
	Registered bool
}

type storeName string

func (n storeName) Name() string { return string(n) }

// Describe lists every configured store in name order.
func Describe(reg *registry.Registry, cfg *Config) []StoreInfo {
	infos := make([]StoreInfo, 0, len(cfg.Stores))
	for _, name := range cfg.StoreNames() {
		info := StoreInfo{
			Name:       name,
			Type:       cfg.Stores[name].Type,
			Registered: reg.Has(storeName(name)),
		}
		if n, ok := reg.PoolSize(storeName(name)); ok {
			info.PoolSize = n
		}
		infos = append(infos, info)
	}
	return infos
}

// Ping pings every configured store through its typed identifier.
func Ping(ctx context.Context, reg *registry.Registry, cfg *Config) []Health {
	results := make([]Health, 0, len(cfg.Stores))
	for _, name := range cfg.StoreNames() {
		sc := cfg.Stores[name]
		h := Health{Name: name, Type: sc.Type}
		if be, ok := backends[sc.Type]; ok {
			h.Err = be.ping(ctx, reg, name)
		} else {
			h.Err = fmt.Errorf("unknown store type: %q", sc.Type)
		}
		results = append(results, h)
	}
	return results
}

func pinger[S interface{ Ping(context.Context) error }, C registry.Config[C]](
	id func(string) registry.Identifier[S, C],
) func(context.Context, *registry.Registry, string) error {
	return func(ctx context.Context, reg *registry.Registry, name string) error {
		c, err := registry.Require(reg, id(name))
		if err != nil {
			return err
		}
		return c.Store().Ping(ctx)
	}
}
