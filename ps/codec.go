package ps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/nickyhof/PrimitiveDB/core"
)

// Codec serializes the catalog and row documents. Both encodings keep
// insertion order for catalog entries and schema order for row keys.
type Codec interface {
	Extension() string
	EncodeCatalog(catalog core.Catalog) ([]byte, error)
	DecodeCatalog(data []byte) (core.Catalog, error)
	EncodeRows(table core.Table, rows []core.Row) ([]byte, error)
	// DecodeRows returns raw values; callers normalize them against the schema.
	DecodeRows(data []byte) ([]map[string]any, error)
}

// ParseCodec returns the codec registered under name ("json" or "msgpack").
func ParseCodec(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// JSONCodec writes human-readable documents indented by four spaces.
type JSONCodec struct{}

func (JSONCodec) Extension() string { return "json" }

func (JSONCodec) EncodeCatalog(catalog core.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, table := range catalog.Tables() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(table.Name)
		if err != nil {
			return nil, err
		}
		specs, err := json.Marshal(table.Specs())
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(specs)
	}
	buf.WriteByte('}')
	return indent(buf.Bytes())
}

func (JSONCodec) DecodeCatalog(data []byte) (core.Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return core.NewCatalog(), nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return core.Catalog{}, err
	}

	var tables []core.Table
	for dec.More() {
		token, err := dec.Token()
		if err != nil {
			return core.Catalog{}, fmt.Errorf("failed to read catalog key: %w", err)
		}
		name, ok := token.(string)
		if !ok {
			return core.Catalog{}, fmt.Errorf("unexpected catalog key %v", token)
		}

		var specs []string
		if err := dec.Decode(&specs); err != nil {
			return core.Catalog{}, fmt.Errorf("failed to read columns of %s: %w", name, err)
		}

		table, err := core.TableFromSpecs(name, specs)
		if err != nil {
			return core.Catalog{}, err
		}
		tables = append(tables, table)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return core.Catalog{}, err
	}

	return core.NewCatalog(tables...), nil
}

func (JSONCodec) EncodeRows(table core.Table, rows []core.Row) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, column := range table.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(column.Name)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(row[column.Name])
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s.%s: %w", table.Name, column.Name, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return indent(buf.Bytes())
}

func (JSONCodec) DecodeRows(data []byte) ([]map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return rows, nil
}

func indent(compact []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "    "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	token, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != want {
		return fmt.Errorf("catalog: expected %q, got %v", want, token)
	}
	return nil
}

// MsgpackCodec writes compact binary documents.
type MsgpackCodec struct{}

func (MsgpackCodec) Extension() string { return "msgpack" }

func (MsgpackCodec) EncodeCatalog(catalog core.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	if err := enc.EncodeMapLen(catalog.Len()); err != nil {
		return nil, err
	}
	for _, table := range catalog.Tables() {
		if err := enc.EncodeString(table.Name); err != nil {
			return nil, err
		}
		if err := enc.Encode(table.Specs()); err != nil {
			return nil, fmt.Errorf("failed to encode columns of %s: %w", table.Name, err)
		}
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) DecodeCatalog(data []byte) (core.Catalog, error) {
	if len(data) == 0 {
		return core.NewCatalog(), nil
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	n, err := dec.DecodeMapLen()
	if err != nil {
		return core.Catalog{}, fmt.Errorf("failed to read catalog: %w", err)
	}

	tables := make([]core.Table, 0, max(n, 0))
	for i := 0; i < n; i++ {
		name, err := dec.DecodeString()
		if err != nil {
			return core.Catalog{}, fmt.Errorf("failed to read catalog key: %w", err)
		}

		var specs []string
		if err := dec.Decode(&specs); err != nil {
			return core.Catalog{}, fmt.Errorf("failed to read columns of %s: %w", name, err)
		}

		table, err := core.TableFromSpecs(name, specs)
		if err != nil {
			return core.Catalog{}, err
		}
		tables = append(tables, table)
	}

	return core.NewCatalog(tables...), nil
}

func (MsgpackCodec) EncodeRows(table core.Table, rows []core.Row) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)

	if err := enc.EncodeArrayLen(len(rows)); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := enc.EncodeMapLen(len(table.Columns)); err != nil {
			return nil, err
		}
		for _, column := range table.Columns {
			if err := enc.EncodeString(column.Name); err != nil {
				return nil, err
			}
			if err := enc.Encode(row[column.Name]); err != nil {
				return nil, fmt.Errorf("failed to encode %s.%s: %w", table.Name, column.Name, err)
			}
		}
	}
	return buf.Bytes(), nil
}

func (MsgpackCodec) DecodeRows(data []byte) ([]map[string]any, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var rows []map[string]any
	if err := msgpack.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode rows: %w", err)
	}
	return rows, nil
}
