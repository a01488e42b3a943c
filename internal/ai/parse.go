package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

func parseClassification(raw []byte) (Classification, error) {
	var out Classification
	if err := json.Unmarshal(raw, &out); err != nil {
		return Classification{}, fmt.Errorf("ai: decode classification: %w", err)
	}
	return out, nil
}

func parseVerification(raw []byte) (Verification, error) {
	var out Verification
	if err := json.Unmarshal(raw, &out); err != nil {
		return Verification{}, fmt.Errorf("ai: decode verification: %w", err)
	}
	return out, nil
}

func parseContentItems(raw []byte) ([]ContentItem, error) {
	var out []ContentItem
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("ai: decode content items: %w", err)
	}

	// Keep only items the feed can actually place.
	items := out[:0]
	for _, it := range out {
		t := strings.ToLower(strings.TrimSpace(it.Type))
		if t != "news" && t != "job" {
			continue
		}
		it.Type = t
		items = append(items, it)
	}
	return items, nil
}
