// Package signer builds signed item-lookup request URLs for the
// Product Advertising API.
//
// The remote service recomputes the signature over the canonical query
// string and rejects any mismatch, so every encoding step here has to
// be reproduced bit for bit by the verifier. The canonical form is:
// parameters sorted ascending by byte value of key, form-urlencoded,
// joined with '&'; the string-to-sign prefixes the HTTP method, host
// and path, one per line. The signature is the base64 HMAC-SHA256
// digest, percent-encoded.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"paapi-lookup/internal/config"
	"paapi-lookup/internal/models"
	"paapi-lookup/pkg/errors"

	"go.uber.org/zap"
)

const (
	paramService    = "AWSECommerceService"
	paramOperation  = "ItemLookup"
	paramVersion    = "2013-08-01"
	responseGroups  = "EditorialReview,Images,ItemAttributes,OfferSummary,SalesRank"
	timestampLayout = "2006-01-02T15:04:05Z"
)

// Service signs item-lookup requests with a fixed set of credentials.
// Safe for concurrent use: all fields are immutable after construction.
type Service struct {
	credentials config.AmazonConfig
	endpoint    config.APIConfig
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates a signer bound to the given credentials and
// endpoint. Empty credentials are rejected up front so that a
// misconfigured client fails before any network activity.
func NewService(credentials config.AmazonConfig, endpoint config.APIConfig, logger *zap.Logger) (*Service, error) {
	if err := checkCredentials(credentials); err != nil {
		return nil, err
	}
	return &Service{
		credentials: credentials,
		endpoint:    endpoint,
		now:         time.Now,
		logger:      logger,
	}, nil
}

// SignLookup builds the complete signed GET URL for one item
// identifier. The identifier is inserted as an opaque string; the
// remote service is the one that rejects malformed IDs.
func (s *Service) SignLookup(itemID string) (models.SignedRequest, error) {
	if err := checkCredentials(s.credentials); err != nil {
		return models.SignedRequest{}, err
	}

	canonical := CanonicalQuery(s.lookupParams(itemID))
	stringToSign := StringToSign(http.MethodGet, s.endpoint.Host, s.endpoint.Path, canonical)
	signature := Sign(stringToSign, s.credentials.SecretKey)
	signedQuery := canonical + "&Signature=" + signature

	requestURL := fmt.Sprintf("%s://%s%s?%s", s.endpoint.Scheme, s.endpoint.Host, s.endpoint.Path, signedQuery)

	s.logger.Debug("signed lookup request",
		zap.String("item_id", itemID),
		zap.String("host", s.endpoint.Host))

	return models.SignedRequest{URL: requestURL}, nil
}

// lookupParams assembles the full parameter set for one lookup,
// including the timestamp taken at call time.
func (s *Service) lookupParams(itemID string) url.Values {
	params := url.Values{}
	params.Set("Service", paramService)
	params.Set("Operation", paramOperation)
	params.Set("AWSAccessKeyId", s.credentials.AccessKey)
	params.Set("ResponseGroup", responseGroups)
	params.Set("ItemId", itemID)
	params.Set("AssociateTag", s.credentials.AssociateTag)
	params.Set("Version", paramVersion)
	params.Set("Timestamp", s.now().UTC().Format(timestampLayout))
	return params
}

// CanonicalQuery renders params in canonical form: keys sorted
// ascending by byte value, each key and value form-urlencoded, pairs
// joined with '&'. Exported so the verifier side can rebuild the exact
// string the signer signed.
func CanonicalQuery(params url.Values) string {
	return params.Encode()
}

// StringToSign joins the method, host, path and canonical query with
// single newlines, in that order.
func StringToSign(method, host, path, canonicalQuery string) string {
	return fmt.Sprintf("%s\n%s\n%s\n%s", method, host, path, canonicalQuery)
}

// Sign computes HMAC-SHA256 over stringToSign keyed by the raw secret
// bytes, base64-encodes the digest and percent-encodes the result so
// it can ride in a query string.
func Sign(stringToSign, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(stringToSign))
	digest := mac.Sum(nil)
	return url.QueryEscape(base64.StdEncoding.EncodeToString(digest))
}

func checkCredentials(credentials config.AmazonConfig) error {
	if credentials.AccessKey == "" {
		return errors.NewConfigurationError("missing credentials", "access key is empty")
	}
	if credentials.SecretKey == "" {
		return errors.NewConfigurationError("missing credentials", "secret key is empty")
	}
	if credentials.AssociateTag == "" {
		return errors.NewConfigurationError("missing credentials", "associate tag is empty")
	}
	return nil
}
