package ops

import (
	"strings"

	"github.com/iconforge/iconforge/internal/catalog"
	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/errors"
)

// LookupOutput is a catalog entry together with its hover text.
type LookupOutput struct {
	catalog.Entry
	Kind  string `json:"kind"`
	Hover string `json:"hover"`
}

// LoadCatalog loads the data file named by path, or the configured data file when path is empty.
func LoadCatalog(cfg *config.Config, path string) (*catalog.Catalog, error) {
	cfg = resolveConfig(cfg)
	if path == "" {
		path = cfg.DataFile
	}
	return catalog.Load(path)
}

// Lookup finds an entry by exact name.
func Lookup(cat *catalog.Catalog, name string) (*LookupOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewInvalidRequest("name is required")
	}
	if cat == nil {
		return nil, errors.NewNotFound(name)
	}

	e, ok := cat.Find(name)
	if !ok {
		return nil, errors.NewNotFound(name)
	}
	return &LookupOutput{
		Entry: e,
		Kind:  e.Detail(),
		Hover: catalog.Hover(e),
	}, nil
}
