// Package models defines the normalized catalog records exchanged
// between the lookup pipeline and its callers.
package models

// ItemDimensions holds the physical dimensions of an item, each
// rendered as "<value> (<unit>)" or left empty when the source
// document omits it.
type ItemDimensions struct {
	Height string `json:"height"`
	Length string `json:"length"`
	Weight string `json:"weight"`
	Width  string `json:"width"`
}

// ItemAttributes groups the descriptive attributes of an item.
type ItemAttributes struct {
	Title          string         `json:"title"`
	Manufacturer   string         `json:"manufacturer"`
	Model          string         `json:"model"`
	Size           string         `json:"size"`
	Warranty       string         `json:"warranty"`
	ItemDimensions ItemDimensions `json:"item_dimensions"`
	Features       []string       `json:"features"`
}

// Image is one rendition of an item's product imagery. Height and
// width are pixel counts carried as text, copied verbatim from the
// source document.
type Image struct {
	Height string `json:"height"`
	Width  string `json:"width"`
	URL    string `json:"url"`
}

// Images holds the three standard renditions. Each is independently
// optional and zero-valued when absent.
type Images struct {
	Small  Image `json:"small"`
	Medium Image `json:"medium"`
	Large  Image `json:"large"`
}

// Item is the fixed-shape record produced by a lookup. Every field is
// always readable: strings default to "" and Features to an empty
// slice, so callers never branch on presence.
type Item struct {
	ItemAttributes ItemAttributes `json:"item_attributes"`
	URL            string         `json:"url"`
	Images         Images         `json:"images"`
	SalesRank      string         `json:"sales_rank"`
	Price          string         `json:"price"`
	Description    string         `json:"description"`
}

// NewItem returns an Item with every field at its documented default.
func NewItem() *Item {
	return &Item{
		ItemAttributes: ItemAttributes{
			Features: []string{},
		},
	}
}

// IsEmpty reports whether the record carries no data at all, i.e. it is
// indistinguishable from NewItem(). Lookups that reach the service but
// get no usable response produce such records.
func (i *Item) IsEmpty() bool {
	if i == nil {
		return true
	}
	return i.ItemAttributes.Title == "" &&
		i.ItemAttributes.Manufacturer == "" &&
		i.ItemAttributes.Model == "" &&
		i.ItemAttributes.Size == "" &&
		i.ItemAttributes.Warranty == "" &&
		i.ItemAttributes.ItemDimensions == (ItemDimensions{}) &&
		len(i.ItemAttributes.Features) == 0 &&
		i.URL == "" &&
		i.Images == (Images{}) &&
		i.SalesRank == "" &&
		i.Price == "" &&
		i.Description == ""
}

// SignedRequest is a fully formed, immediately usable HTTP GET target
// for the catalog service. It is derived once and never mutated.
type SignedRequest struct {
	URL string `json:"url"`
}
