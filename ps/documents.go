package ps

import (
	"fmt"
	"log/slog"

	"github.com/nickyhof/PrimitiveDB/core"
)

const (
	catalogName = "db_meta"
	dataDir     = "data"
)

// Documents maps the catalog and per-table row sets onto store documents.
// Every failure it returns wraps core.ErrIO.
type Documents struct {
	store    Store
	codec    Codec
	identity core.Identity
	logger   *slog.Logger
}

func NewDocuments(store Store, codec Codec, identity core.Identity, logger *slog.Logger) *Documents {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Documents{
		store:    store,
		codec:    codec,
		identity: identity,
		logger:   logger,
	}
}

func (d *Documents) CatalogPath() string {
	return catalogName + "." + d.codec.Extension()
}

func (d *Documents) RowsPath(table string) string {
	return dataDir + "/" + table + "." + d.codec.Extension()
}

func (d *Documents) Store() Store { return d.store }

// LoadCatalog reads the catalog document. A missing document is an empty catalog.
func (d *Documents) LoadCatalog() (core.Catalog, error) {
	data, exists, err := d.store.ReadFile(d.CatalogPath())
	if err != nil {
		return core.Catalog{}, fmt.Errorf("%w: failed to read catalog: %w", core.ErrIO, err)
	}
	if !exists {
		return core.NewCatalog(), nil
	}

	catalog, err := d.codec.DecodeCatalog(data)
	if err != nil {
		return core.Catalog{}, fmt.Errorf("%w: failed to decode catalog: %w", core.ErrIO, err)
	}
	return catalog, nil
}

// LoadRows reads the row document of table, converting stored values to
// the column types. Keys that are not columns are dropped.
func (d *Documents) LoadRows(table core.Table) ([]core.Row, error) {
	data, exists, err := d.store.ReadFile(d.RowsPath(table.Name))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read rows of %s: %w", core.ErrIO, table.Name, err)
	}
	if !exists {
		return []core.Row{}, nil
	}

	raw, err := d.codec.DecodeRows(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode rows of %s: %w", core.ErrIO, table.Name, err)
	}

	rows := make([]core.Row, 0, len(raw))
	for i, stored := range raw {
		row := make(core.Row, len(table.Columns))
		for _, column := range table.Columns {
			value, ok := stored[column.Name]
			if !ok || value == nil {
				continue
			}
			normalized, err := core.Normalize(value, column.Type)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d of %s: %w", core.ErrIO, i, table.Name, err)
			}
			row[column.Name] = normalized
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SaveRows replaces the row document of table.
func (d *Documents) SaveRows(table core.Table, rows []core.Row, message string) error {
	data, err := d.codec.EncodeRows(table, rows)
	if err != nil {
		return fmt.Errorf("%w: failed to encode rows of %s: %w", core.ErrIO, table.Name, err)
	}

	batch := Begin(d.store)
	if err := batch.AddWrite(d.RowsPath(table.Name), data); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	return d.commit(batch, message)
}

// CreateTable stores next as the catalog together with an empty row
// document for table.
func (d *Documents) CreateTable(next core.Catalog, table core.Table) error {
	catalogData, err := d.codec.EncodeCatalog(next)
	if err != nil {
		return fmt.Errorf("%w: failed to encode catalog: %w", core.ErrIO, err)
	}
	rowsData, err := d.codec.EncodeRows(table, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to encode rows of %s: %w", core.ErrIO, table.Name, err)
	}

	batch := Begin(d.store)
	if err := batch.AddWrite(d.CatalogPath(), catalogData); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	if err := batch.AddWrite(d.RowsPath(table.Name), rowsData); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	return d.commit(batch, "create table "+table.Name)
}

// DropTable stores next as the catalog and removes the row document of
// name. A row document that is already gone is not an error.
func (d *Documents) DropTable(next core.Catalog, name string) error {
	catalogData, err := d.codec.EncodeCatalog(next)
	if err != nil {
		return fmt.Errorf("%w: failed to encode catalog: %w", core.ErrIO, err)
	}

	batch := Begin(d.store)
	if err := batch.AddWrite(d.CatalogPath(), catalogData); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	if err := batch.AddDelete(d.RowsPath(name)); err != nil {
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	return d.commit(batch, "drop table "+name)
}

// commit applies batch. A failed commit discards the queued changes so
// nothing half-written is retried.
func (d *Documents) commit(batch *Batch, message string) error {
	changes := batch.OperationCount()

	txn, err := batch.Commit(d.identity, message)
	if err != nil {
		batch.Rollback()
		d.logger.Warn("documents not written", "message", message, "changes", changes, "error", err)
		return fmt.Errorf("%w: %w", core.ErrIO, err)
	}
	d.logger.Debug("documents written", "message", message, "txn", txn.Id, "changes", changes)
	return nil
}

// Close releases the underlying store.
func (d *Documents) Close() error {
	return d.store.Close()
}
