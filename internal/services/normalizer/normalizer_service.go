// Package normalizer maps parsed item-lookup response documents onto
// the fixed Item record shape.
//
// Extraction is tolerant by rule: every field is optional and absence
// maps to the field's default, never to an error. The only hard
// failure is a response that reports its own request as invalid.
package normalizer

import (
	"fmt"

	"paapi-lookup/internal/models"
	"paapi-lookup/internal/xmltree"
	"paapi-lookup/pkg/errors"

	"go.uber.org/zap"
)

// invalidLookupMessage is the fallback when the response flags the
// request invalid but carries no error section.
const invalidLookupMessage = "Error: Invalid lookup!"

type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Normalize extracts the item record from a lookup response document.
// When the response reports the request invalid it returns an upstream
// error carrying the best available message and no record. A valid
// response with missing sub-elements yields a record with defaults in
// the gaps.
func (s *Service) Normalize(doc *xmltree.Node) (*models.Item, error) {
	if doc.TextAt("Items", "Request", "IsValid") == "False" {
		message := doc.TextAt("Items", "Request", "Errors", "Error", "Message")
		if message == "" {
			message = invalidLookupMessage
		}
		s.logger.Warn("lookup reported invalid request", zap.String("message", message))
		return nil, errors.NewUpstreamError(message)
	}

	item := models.NewItem()

	source := doc.First("Items", "Item")
	if source == nil {
		return item, nil
	}

	s.extractAttributes(source, item)
	s.extractImages(source, item)

	item.URL = source.TextAt("DetailPageURL")
	item.SalesRank = source.TextAt("SalesRank")
	item.Price = source.TextAt("OfferSummary", "LowestNewPrice", "FormattedPrice")

	// EditorialReviews can repeat; only the first review's content
	// becomes the description.
	reviews := source.All("EditorialReviews", "EditorialReview")
	if len(reviews) > 0 {
		item.Description = reviews[0].TextAt("Content")
	}

	return item, nil
}

func (s *Service) extractAttributes(source *xmltree.Node, item *models.Item) {
	item.ItemAttributes.Title = source.TextAt("ItemAttributes", "Title")
	item.ItemAttributes.Manufacturer = source.TextAt("ItemAttributes", "Manufacturer")
	item.ItemAttributes.Model = source.TextAt("ItemAttributes", "Model")
	item.ItemAttributes.Size = source.TextAt("ItemAttributes", "Size")
	item.ItemAttributes.Warranty = source.TextAt("ItemAttributes", "Warranty")

	// Feature occurs zero, one or many times; one entry per occurrence
	// in document order.
	for _, feature := range source.All("ItemAttributes", "Feature") {
		item.ItemAttributes.Features = append(item.ItemAttributes.Features, feature.Content())
	}

	dimensions := source.First("ItemAttributes", "ItemDimensions")
	item.ItemAttributes.ItemDimensions = models.ItemDimensions{
		Height: formatDimension(dimensions.First("Height")),
		Length: formatDimension(dimensions.First("Length")),
		Weight: formatDimension(dimensions.First("Weight")),
		Width:  formatDimension(dimensions.First("Width")),
	}
}

func (s *Service) extractImages(source *xmltree.Node, item *models.Item) {
	item.Images.Small = extractImage(source.First("SmallImage"))
	item.Images.Medium = extractImage(source.First("MediumImage"))
	item.Images.Large = extractImage(source.First("LargeImage"))
}

func extractImage(node *xmltree.Node) models.Image {
	if node == nil {
		return models.Image{}
	}
	return models.Image{
		Height: node.TextAt("Height"),
		Width:  node.TextAt("Width"),
		URL:    node.TextAt("URL"),
	}
}

// formatDimension renders a {value, unit} dimension element as
// "<value> (<unit>)", or "" when the element is absent.
func formatDimension(node *xmltree.Node) string {
	if node == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", node.Content(), node.Attr("Units"))
}
