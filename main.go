package PrimitiveDB

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/nickyhof/PrimitiveDB/core"
	"github.com/nickyhof/PrimitiveDB/db"
	"github.com/nickyhof/PrimitiveDB/ps"
)

// Backend names accepted by OpenBackend.
const (
	BackendGit    = "git"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// BoltFileName is the bbolt file created inside the data directory.
const BoltFileName = "primitive.db"

type Instance struct {
	Store ps.Store
	Codec ps.Codec
}

func Open(store ps.Store, codec ps.Codec) *Instance {
	if codec == nil {
		codec = ps.JSONCodec{}
	}
	return &Instance{
		Store: store,
		Codec: codec,
	}
}

// OpenBackend opens the named store. dataDir is ignored for memory.
func OpenBackend(backend, dataDir string, logger *slog.Logger) (ps.Store, error) {
	switch backend {
	case BackendGit, "":
		persistence, err := ps.NewFilePersistence(dataDir)
		if err != nil {
			return nil, err
		}
		return persistence.WithLogger(logger), nil
	case BackendBolt:
		persistence, err := ps.NewBoltPersistence(filepath.Join(dataDir, BoltFileName))
		if err != nil {
			return nil, err
		}
		return persistence.WithLogger(logger), nil
	case BackendMemory:
		persistence, err := ps.NewMemoryPersistence()
		if err != nil {
			return nil, err
		}
		return persistence.WithLogger(logger), nil
	default:
		return nil, fmt.Errorf("unknown backend %q: use git, bolt or memory", backend)
	}
}

// DefaultCodec is msgpack for bolt and JSON everywhere else.
func DefaultCodec(backend string) ps.Codec {
	if backend == BackendBolt {
		return ps.MsgpackCodec{}
	}
	return ps.JSONCodec{}
}

func (instance *Instance) Engine(identity core.Identity, logger *slog.Logger) *db.Engine {
	documents := ps.NewDocuments(instance.Store, instance.Codec, identity, logger)
	return db.NewEngine(documents, logger)
}

func (instance *Instance) Close() error {
	return instance.Store.Close()
}
