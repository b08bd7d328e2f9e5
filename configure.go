package bakery

import (
	"fmt"

	"github.com/syssam/bakery/config"
	"github.com/syssam/bakery/schema"
	"github.com/syssam/bakery/store/sqlstore"
)

// Configure applies a loaded configuration to the factory: the
// alternate builder path, generator bindings, and SQL-backed stores.
// Builder and generator paths resolve lazily at first use; store
// connections open immediately.
func (f *Factory) Configure(cfg *config.Config) error {
	if cfg.Builder != "" {
		f.builderPath = cfg.Builder
	}
	for typeName, path := range cfg.Generators {
		t, err := schema.TypeByName(typeName)
		if err != nil {
			return fmt.Errorf("bakery: configure generators: %w", err)
		}
		f.RegisterGeneratorPath(t, path)
	}
	for name, sc := range cfg.Stores {
		st, err := sqlstore.Open(sc.Dialect, sc.DSN)
		if err != nil {
			return fmt.Errorf("bakery: configure store %q: %w", name, err)
		}
		f.stores[name] = st
	}
	return nil
}
