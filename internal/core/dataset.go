package core

import (
	"fmt"
	"time"

	"github.com/JonMunkholm/rollfinder/internal/config"
	"github.com/JonMunkholm/rollfinder/internal/sheet"
	"github.com/google/uuid"
)

// Dataset is one successfully loaded sheet. It is built once and only read
// afterwards, so it can be shared freely between requests.
type Dataset struct {
	ID        string
	SourceURL string
	Charset   string
	LoadedAt  time.Time

	Headers []string
	Records []sheet.Record
	Mapping RoleMapping

	engine  *FilterEngine
	columns []string
}

// BuildDataset turns decoded export text into a Dataset.
//
// It fails with ErrNoData when the text holds no rows and with a
// *ColumnResolutionError when a role cannot be matched to a header.
func BuildDataset(text string, aliases RoleAliasConfig) (*Dataset, error) {
	headers, records := sheet.ToRecords(sheet.Parse(text))
	if len(headers) == 0 {
		return nil, ErrNoData
	}

	mapping := Resolve(headers, aliases)
	if err := CheckMapping(headers, aliases, mapping); err != nil {
		return nil, err
	}

	engine, err := NewFilterEngine(records, mapping)
	if err != nil {
		return nil, fmt.Errorf("build dataset: %w", err)
	}

	return &Dataset{
		ID:       uuid.NewString(),
		LoadedAt: time.Now().UTC(),
		Headers:  headers,
		Records:  records,
		Mapping:  mapping,
		engine:   engine,
		columns:  sheet.UniqueHeaders(headers),
	}, nil
}

// Engine returns the filter engine bound to this dataset.
func (d *Dataset) Engine() *FilterEngine {
	return d.engine
}

// Columns returns the distinct headers in sheet order, for rendering a record.
func (d *Dataset) Columns() []string {
	return d.columns
}

// NewCascade starts a fresh cascade over this dataset.
func (d *Dataset) NewCascade() *Cascade {
	return NewCascade(d.engine)
}

// AliasConfigFrom converts configured column aliases into a RoleAliasConfig,
// falling back to DefaultAliases for empty lists.
func AliasConfigFrom(c config.ColumnsConfig) RoleAliasConfig {
	return RoleAliasConfig{
		RoleClass:    c.ClassAliases,
		RoleDivision: c.DivisionAliases,
		RoleRoll:     c.RollAliases,
	}.WithDefaults()
}
