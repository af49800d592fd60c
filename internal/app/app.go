// Package app wires configuration to a loaded list store.
package app

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/liststore"
	"github.com/idilsaglam/shoplist/internal/store"
	"github.com/idilsaglam/shoplist/internal/store/jsonstore"
	"github.com/idilsaglam/shoplist/internal/store/memstore"
	"github.com/idilsaglam/shoplist/internal/store/sqlitestore"
)

const sqliteFileName = "shoplist.db"

// OpenSubstrate opens the backend named in cfg.
func OpenSubstrate(cfg *config.Config) (store.Substrate, error) {
	switch cfg.Backend {
	case config.BackendJSON:
		return jsonstore.Open(cfg.DataDir)
	case config.BackendSQLite:
		return sqlitestore.Open(filepath.Join(cfg.DataDir, sqliteFileName))
	case config.BackendMemory:
		return memstore.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// Open returns a loaded store and the substrate to close when done.
func Open(cfg *config.Config, log *zap.Logger) (*liststore.Store, store.Substrate, error) {
	kv, err := OpenSubstrate(cfg)
	if err != nil {
		return nil, nil, err
	}
	s := liststore.New(kv, log)
	if err := s.Load(); err != nil {
		kv.Close()
		return nil, nil, err
	}
	log.Debug("list ready", zap.String("backend", cfg.Backend), zap.Int("items", s.Len()))
	return s, kv, nil
}
