// Package simulator implements a local stand-in for the product
// catalog service. It serves the same signed GET endpoint, verifies
// request signatures with the shared canonical-form code, and renders
// response envelopes from a YAML item catalog, so the lookup client
// can be exercised end to end without production credentials.
package simulator

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CatalogItem is one item definition in the simulator's catalog file.
// Optional fields left empty are omitted from the rendered response,
// which is how partial-data behavior gets exercised.
type CatalogItem struct {
	ASIN          string             `yaml:"asin" validate:"required"`
	Title         string             `yaml:"title" validate:"required"`
	Manufacturer  string             `yaml:"manufacturer"`
	Model         string             `yaml:"model"`
	Size          string             `yaml:"size"`
	Warranty      string             `yaml:"warranty"`
	Features      []string           `yaml:"features"`
	Dimensions    *CatalogDimensions `yaml:"dimensions"`
	DetailPageURL string             `yaml:"detail_page_url" validate:"omitempty,url"`
	SalesRank     string             `yaml:"sales_rank"`
	Price         string             `yaml:"price"`
	UsedPrice     string             `yaml:"used_price"`
	Description   string             `yaml:"description"`
	Images        CatalogImages      `yaml:"images"`
}

type CatalogDimensions struct {
	Height *CatalogDimension `yaml:"height"`
	Length *CatalogDimension `yaml:"length"`
	Weight *CatalogDimension `yaml:"weight"`
	Width  *CatalogDimension `yaml:"width"`
}

type CatalogDimension struct {
	Value string `yaml:"value" validate:"required"`
	Units string `yaml:"units" validate:"required"`
}

type CatalogImages struct {
	Small  *CatalogImage `yaml:"small"`
	Medium *CatalogImage `yaml:"medium"`
	Large  *CatalogImage `yaml:"large"`
}

type CatalogImage struct {
	URL    string `yaml:"url" validate:"required,url"`
	Height string `yaml:"height"`
	Width  string `yaml:"width"`
}

type catalogFile struct {
	Items []*CatalogItem `yaml:"items"`
}

// Catalog is an immutable in-memory item catalog keyed by ASIN.
type Catalog struct {
	items map[string]*CatalogItem
}

// LoadCatalog reads and validates a YAML catalog file. Every item must
// carry an ASIN and title, image and dimension entries must be
// complete, and ASINs must be unique.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	validate := validator.New()
	items := make(map[string]*CatalogItem, len(file.Items))
	for i, item := range file.Items {
		if err := validate.Struct(item); err != nil {
			return nil, fmt.Errorf("invalid catalog item at index %d: %w", i, err)
		}
		if _, exists := items[item.ASIN]; exists {
			return nil, fmt.Errorf("duplicate ASIN %s at index %d", item.ASIN, i)
		}
		items[item.ASIN] = item
	}

	return &Catalog{items: items}, nil
}

// Lookup returns the catalog item for asin, if present.
func (c *Catalog) Lookup(asin string) (*CatalogItem, bool) {
	item, ok := c.items[asin]
	return item, ok
}

// Len reports the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}
