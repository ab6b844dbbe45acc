package simulator

import "encoding/xml"

// Error codes used in rendered envelopes.
const (
	ErrorCodeInvalidParameterValue = "AWS.InvalidParameterValue"
	ErrorCodeMissingParameters     = "AWS.MissingParameters"
	ErrorCodeSignatureMismatch     = "SignatureDoesNotMatch"
	ErrorCodeInvalidClientTokenID  = "InvalidClientTokenId"
)

// ItemLookupResponse is the response envelope the catalog endpoint
// serves on success and on invalid requests alike. Lookup clients
// inspect Items/Request/IsValid before reading the item payload.
type ItemLookupResponse struct {
	XMLName xml.Name      `xml:"ItemLookupResponse"`
	Items   ResponseItems `xml:"Items"`
}

type ResponseItems struct {
	Request ResponseRequest `xml:"Request"`
	Item    *ResponseItem   `xml:"Item,omitempty"`
}

type ResponseRequest struct {
	IsValid string          `xml:"IsValid"`
	Errors  *ResponseErrors `xml:"Errors,omitempty"`
}

type ResponseErrors struct {
	Error []ResponseError `xml:"Error"`
}

type ResponseError struct {
	Code    string `xml:"Code"`
	Message string `xml:"Message"`
}

type ResponseItem struct {
	ASIN             string                    `xml:"ASIN"`
	DetailPageURL    string                    `xml:"DetailPageURL,omitempty"`
	SalesRank        string                    `xml:"SalesRank,omitempty"`
	SmallImage       *ResponseImage            `xml:"SmallImage,omitempty"`
	MediumImage      *ResponseImage            `xml:"MediumImage,omitempty"`
	LargeImage       *ResponseImage            `xml:"LargeImage,omitempty"`
	ItemAttributes   ResponseAttributes        `xml:"ItemAttributes"`
	OfferSummary     *ResponseOfferSummary     `xml:"OfferSummary,omitempty"`
	EditorialReviews *ResponseEditorialReviews `xml:"EditorialReviews,omitempty"`
}

type ResponseImage struct {
	URL    string            `xml:"URL"`
	Height ResponseDimension `xml:"Height"`
	Width  ResponseDimension `xml:"Width"`
}

// ResponseDimension renders a measured value with its unit attribute,
// e.g. <Height Units="pixels">75</Height>.
type ResponseDimension struct {
	Units string `xml:"Units,attr,omitempty"`
	Value string `xml:",chardata"`
}

type ResponseAttributes struct {
	Title          string                  `xml:"Title,omitempty"`
	Manufacturer   string                  `xml:"Manufacturer,omitempty"`
	Model          string                  `xml:"Model,omitempty"`
	Size           string                  `xml:"Size,omitempty"`
	Warranty       string                  `xml:"Warranty,omitempty"`
	ItemDimensions *ResponseItemDimensions `xml:"ItemDimensions,omitempty"`
	Feature        []string                `xml:"Feature,omitempty"`
}

type ResponseItemDimensions struct {
	Height *ResponseDimension `xml:"Height,omitempty"`
	Length *ResponseDimension `xml:"Length,omitempty"`
	Weight *ResponseDimension `xml:"Weight,omitempty"`
	Width  *ResponseDimension `xml:"Width,omitempty"`
}

type ResponseOfferSummary struct {
	LowestNewPrice  *ResponsePrice `xml:"LowestNewPrice,omitempty"`
	LowestUsedPrice *ResponsePrice `xml:"LowestUsedPrice,omitempty"`
}

type ResponsePrice struct {
	FormattedPrice string `xml:"FormattedPrice"`
}

type ResponseEditorialReviews struct {
	EditorialReview []ResponseEditorialReview `xml:"EditorialReview"`
}

type ResponseEditorialReview struct {
	Source  string `xml:"Source,omitempty"`
	Content string `xml:"Content"`
}

// SignatureErrorResponse is the body served alongside a 403 when the
// request signature does not verify.
type SignatureErrorResponse struct {
	XMLName xml.Name      `xml:"ItemLookupErrorResponse"`
	Error   ResponseError `xml:"Error"`
}

// BuildItemResponse maps a catalog item onto a valid response
// envelope. Empty catalog fields produce absent elements rather than
// empty ones.
func BuildItemResponse(item *CatalogItem) *ItemLookupResponse {
	response := &ItemLookupResponse{
		Items: ResponseItems{
			Request: ResponseRequest{IsValid: "True"},
			Item: &ResponseItem{
				ASIN:          item.ASIN,
				DetailPageURL: item.DetailPageURL,
				SalesRank:     item.SalesRank,
				SmallImage:    buildImage(item.Images.Small),
				MediumImage:   buildImage(item.Images.Medium),
				LargeImage:    buildImage(item.Images.Large),
				ItemAttributes: ResponseAttributes{
					Title:          item.Title,
					Manufacturer:   item.Manufacturer,
					Model:          item.Model,
					Size:           item.Size,
					Warranty:       item.Warranty,
					ItemDimensions: buildItemDimensions(item.Dimensions),
					Feature:        item.Features,
				},
				OfferSummary: buildOfferSummary(item),
			},
		},
	}

	if item.Description != "" {
		response.Items.Item.EditorialReviews = &ResponseEditorialReviews{
			EditorialReview: []ResponseEditorialReview{
				{Source: "Product Description", Content: item.Description},
			},
		}
	}

	return response
}

// BuildInvalidResponse renders an IsValid=False envelope carrying a
// single error entry.
func BuildInvalidResponse(code, message string) *ItemLookupResponse {
	return &ItemLookupResponse{
		Items: ResponseItems{
			Request: ResponseRequest{
				IsValid: "False",
				Errors: &ResponseErrors{
					Error: []ResponseError{{Code: code, Message: message}},
				},
			},
		},
	}
}

func buildImage(image *CatalogImage) *ResponseImage {
	if image == nil {
		return nil
	}
	return &ResponseImage{
		URL:    image.URL,
		Height: ResponseDimension{Units: "pixels", Value: image.Height},
		Width:  ResponseDimension{Units: "pixels", Value: image.Width},
	}
}

func buildItemDimensions(dimensions *CatalogDimensions) *ResponseItemDimensions {
	if dimensions == nil {
		return nil
	}
	return &ResponseItemDimensions{
		Height: buildDimension(dimensions.Height),
		Length: buildDimension(dimensions.Length),
		Weight: buildDimension(dimensions.Weight),
		Width:  buildDimension(dimensions.Width),
	}
}

func buildDimension(dimension *CatalogDimension) *ResponseDimension {
	if dimension == nil {
		return nil
	}
	return &ResponseDimension{Units: dimension.Units, Value: dimension.Value}
}

func buildOfferSummary(item *CatalogItem) *ResponseOfferSummary {
	if item.Price == "" && item.UsedPrice == "" {
		return nil
	}
	summary := &ResponseOfferSummary{}
	if item.Price != "" {
		summary.LowestNewPrice = &ResponsePrice{FormattedPrice: item.Price}
	}
	if item.UsedPrice != "" {
		summary.LowestUsedPrice = &ResponsePrice{FormattedPrice: item.UsedPrice}
	}
	return summary
}
