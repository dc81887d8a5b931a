package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/raosiddharth510-rao/store/internal/domain/model"
	"github.com/raosiddharth510-rao/store/internal/infra/repository/catalog"
)

type IScanService interface {
	ResolveProduct(ctx context.Context, payload string) (*model.Product, error)
}

// ScanService resolves a raw scanner payload to a catalog record. How the
// payload was obtained (camera, upload, keyed in) is not its business.
type ScanService struct {
	catalog catalog.IStore
}

func NewScanService(catalogStore catalog.IStore) *ScanService {
	return &ScanService{catalog: catalogStore}
}

func (s *ScanService) ResolveProduct(ctx context.Context, payload string) (*model.Product, error) {
	productID, err := ProductIDFromPayload(payload)
	if err != nil {
		return nil, err
	}
	return s.catalog.Get(ctx, productID)
}

// ProductIDFromPayload extracts the candidate product id. Payloads are
// either a JSON object carrying a product_id (or id) key, or the plain id
// itself.
func ProductIDFromPayload(payload string) (string, error) {
	trimmed := strings.TrimSpace(payload)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err == nil {
		id := payloadKey(parsed, "product_id")
		if id == "" {
			id = payloadKey(parsed, "id")
		}
		if id == "" {
			return "", &model.ValidationError{Field: "payload", Reason: "no product id in scanned data"}
		}
		return id, nil
	}

	if trimmed == "" {
		return "", &model.ValidationError{Field: "payload", Reason: "must not be empty"}
	}
	return trimmed, nil
}

func payloadKey(parsed map[string]any, key string) string {
	switch v := parsed[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

var _ IScanService = (*ScanService)(nil)
