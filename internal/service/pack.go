package service

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shoplift/autopilot/internal/domain"
)

// defaultChecklist is the fixed human-readable confirmation list stamped
// into every pack. Purely descriptive; nothing enforces it in code.
var defaultChecklist = []string{
	"title auto-filled",
	"sku auto-filled",
	"stock auto-filled",
	"price auto-filled",
	"manual confirmation gate enabled by default",
}

// BuildPack turns a raw product payload into an immutable listing pack.
// Required fields: title, desc, sale_price, cost_price. Price fields
// must parse as non-negative numbers. Missing or malformed required
// fields fail with a domain.ValidationError. No side effects.
func BuildPack(productID string, payload map[string]interface{}) (*domain.ListingPack, error) {
	title, err := requireString(payload, "title")
	if err != nil {
		return nil, err
	}
	desc, err := requireString(payload, "desc")
	if err != nil {
		return nil, err
	}
	salePrice, err := requirePrice(payload, "sale_price")
	if err != nil {
		return nil, err
	}
	costPrice, err := requirePrice(payload, "cost_price")
	if err != nil {
		return nil, err
	}

	pack := &domain.ListingPack{
		ProductID: productID,
		Title:     title,
		Desc:      desc,
		Tags:      toStringSlice(payload["tags"]),
		SalePrice: salePrice,
		CostPrice: costPrice,
		SKUList:   toSKUList(payload["sku_list"]),
		Images:    toStringSlice(payload["images"]),
		Checklist: append(domain.StringArray{}, defaultChecklist...),
		Version:   domain.PackVersion,
	}
	return pack, nil
}

func requireString(payload map[string]interface{}, field string) (string, error) {
	raw, ok := payload[field]
	if !ok || raw == nil {
		return "", &domain.ValidationError{Field: field, Reason: "required field is missing"}
	}
	s, ok := raw.(string)
	if !ok || s == "" {
		return "", &domain.ValidationError{Field: field, Reason: "must be a non-empty string"}
	}
	return s, nil
}

func requirePrice(payload map[string]interface{}, field string) (float64, error) {
	raw, ok := payload[field]
	if !ok || raw == nil {
		return 0, &domain.ValidationError{Field: field, Reason: "required field is missing"}
	}
	price, err := toFloat(raw)
	if err != nil {
		return 0, &domain.ValidationError{Field: field, Reason: "must be numeric"}
	}
	if price < 0 {
		return 0, &domain.ValidationError{Field: field, Reason: "must be non-negative"}
	}
	return price, nil
}

// toFloat accepts the numeric shapes a JSON payload can arrive in.
func toFloat(raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(v, 64)
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", raw)
	}
}

func toStringSlice(raw interface{}) domain.StringArray {
	switch v := raw.(type) {
	case nil:
		return domain.StringArray{}
	case []string:
		return append(domain.StringArray{}, v...)
	case []interface{}:
		out := make(domain.StringArray, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return domain.StringArray{}
	}
}

func toSKUList(raw interface{}) domain.SKUList {
	switch v := raw.(type) {
	case nil:
		return domain.SKUList{}
	case []map[string]interface{}:
		return append(domain.SKUList{}, v...)
	case domain.SKUList:
		return append(domain.SKUList{}, v...)
	case []interface{}:
		out := make(domain.SKUList, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}
		return out
	default:
		return domain.SKUList{}
	}
}
