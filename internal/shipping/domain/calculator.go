package domain

import (
	"encoding/json"
	"strings"
)

// CartLine is the slice of an order item the calculator needs
type CartLine struct {
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Calculate prices a delivery. Pure: no I/O beyond the already-loaded method
// and zones, safe to call concurrently and repeatedly.
func Calculate(method *ShippingMethod, items []CartLine, dest Destination, zones []ShippingZone, rateFor func(methodID, zoneID uint) float64) (float64, error) {
	if method == nil {
		return 0, ErrMethodNotFound
	}
	if !method.IsActive {
		return 0, ErrMethodInactive
	}

	switch method.Type {
	case TypeFixed:
		return method.BasePrice, nil

	case TypeByWeight:
		// Quantity stands in for weight until per-item weight is modeled.
		total := 0
		for _, item := range items {
			total += item.Quantity
		}
		return method.BasePrice * float64(total), nil

	case TypeByCartValue:
		settings := parseSettings(method.Settings)
		subtotal := 0.0
		for _, item := range items {
			subtotal += float64(item.Quantity) * item.UnitPrice
		}
		if settings.FreeShippingThreshold > 0 && subtotal >= settings.FreeShippingThreshold {
			return 0, nil
		}
		return method.BasePrice, nil

	case TypeByDistance:
		extra := 0.0
		if zone := matchZone(zones, dest); zone != nil && rateFor != nil {
			extra = rateFor(method.ID, zone.ID)
		}
		return method.BasePrice + extra, nil
	}

	return 0, ErrUnknownType
}

// matchZone resolves the destination by linear scan; nil when the destination
// is omitted or no zone lists its province or city
func matchZone(zones []ShippingZone, dest Destination) *ShippingZone {
	if dest.Province == "" && dest.City == "" {
		return nil
	}
	for i := range zones {
		zone := &zones[i]
		if dest.Province != "" && containsField(zone.Provinces, dest.Province) {
			return zone
		}
		if dest.City != "" && containsField(zone.Cities, dest.City) {
			return zone
		}
	}
	return nil
}

func containsField(csv, value string) bool {
	for _, field := range strings.Split(csv, ",") {
		if strings.EqualFold(strings.TrimSpace(field), value) {
			return true
		}
	}
	return false
}

func parseSettings(raw string) MethodSettings {
	var settings MethodSettings
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &settings)
	}
	return settings
}
