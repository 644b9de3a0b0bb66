// Package ps provides the persistence layer for PrimitiveDB.
//
// Data lives in documents addressed by path: one catalog document and one
// row document per table. A Store reads and replaces whole documents; two
// implementations exist.
//
// # Git Persistence
//
// Every write is a Git commit made with go-git, so the full history of the
// database is kept:
//
//	persistence, err := ps.NewFilePersistence("/path/to/data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For testing or ephemeral databases use ps.NewMemoryPersistence().
//
// # Bolt Persistence
//
// Documents are stored in a single bbolt file:
//
//	persistence, err := ps.NewBoltPersistence("/path/to/data/primitive.db")
//
// # Documents
//
// Documents encodes the catalog and rows with a Codec (JSON or msgpack) and
// writes related documents in one batch:
//
//	docs := ps.NewDocuments(persistence, ps.JSONCodec{}, identity, logger)
//	catalog, err := docs.LoadCatalog()
package ps
