package draft

import (
	"fmt"

	"github.com/ilkoid/rate-my-writing/pkg/config"
	"github.com/ilkoid/rate-my-writing/pkg/utils"
	"github.com/spf13/afero"
)

// OpenBackend создаёт backend по конфигурации.
func OpenBackend(cfg config.DraftConfig) (Backend, error) {
	switch cfg.Backend {
	case config.DraftBackendFile:
		return NewFileBackend(afero.NewOsFs(), cfg.Path), nil
	case config.DraftBackendSQLite:
		return OpenSQLite(cfg.Path)
	case config.DraftBackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown draft backend: %s", cfg.Backend)
	}
}

// Open — OpenBackend + NewStore. Недоступное хранилище не ошибка:
// возвращается Store в режиме "только память" и пишется предупреждение.
func Open(cfg config.DraftConfig) *Store {
	backend, err := OpenBackend(cfg)
	if err != nil {
		utils.Warn("draft storage unavailable at startup, keeping draft in memory only",
			"backend", cfg.Backend,
			"path", cfg.Path,
			"error", err)
		return NewStore(nil, cfg.Backend)
	}
	return NewStore(backend, cfg.Backend)
}
