package broll

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"cutplan/internal/services"
	"cutplan/internal/textutil"
)

// Asset is one registered b-roll clip with its keyword set, derived by
// tokenizing the free-text description.
type Asset struct {
	ID       string
	Keywords map[string]struct{}
}

// Registry holds b-roll assets in registration order. Order matters: ties in
// keyword overlap resolve to the first-registered asset.
type Registry struct {
	assets []Asset
	ids    map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]int)}
}

// Register adds an asset under id with keywords tokenized from description.
// Registering an existing id replaces its keywords but keeps its original
// position, so tie-break order stays stable.
func (r *Registry) Register(id, description string) error {
	if id == "" {
		return services.Wrap(services.ErrInput, "broll", "register", "asset id is empty", nil)
	}
	keywords := textutil.WordSet(textutil.Tokenize(description))
	if pos, ok := r.ids[id]; ok {
		r.assets[pos].Keywords = keywords
		return nil
	}
	r.ids[id] = len(r.assets)
	r.assets = append(r.assets, Asset{ID: id, Keywords: keywords})
	return nil
}

// Len returns the number of registered assets.
func (r *Registry) Len() int {
	return len(r.assets)
}

// Match selects the asset whose keywords best overlap the cue keywords,
// Jaccard-scored. Ties keep the first-registered asset. No asset at or above
// minOverlap returns ok=false; that is an omission, not an error.
func (r *Registry) Match(keywords map[string]struct{}, minOverlap float64) (string, bool) {
	if len(keywords) == 0 {
		return "", false
	}
	bestID := ""
	bestScore := 0.0
	for _, asset := range r.assets {
		score := textutil.JaccardSimilarity(keywords, asset.Keywords)
		if score > bestScore {
			bestID = asset.ID
			bestScore = score
		}
	}
	if bestID == "" || bestScore < minOverlap {
		return "", false
	}
	return bestID, true
}

// assetRecord is the preferred registry file shape: an ordered array.
type assetRecord struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// LoadRegistry reads a JSON asset registry from path. The preferred shape is
// an ordered array of {id, description} records; a plain object of
// id → description is accepted too, registered in sorted-key order since JSON
// objects carry no ordering.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "broll", "load",
			fmt.Sprintf("read registry %s", path), err)
	}
	return ParseRegistry(data)
}

// ParseRegistry decodes registry JSON. See LoadRegistry for accepted shapes.
func ParseRegistry(data []byte) (*Registry, error) {
	registry := NewRegistry()

	var records []assetRecord
	if err := json.Unmarshal(data, &records); err == nil {
		for _, record := range records {
			if err := registry.Register(record.ID, record.Description); err != nil {
				return nil, err
			}
		}
		return registry, nil
	}

	var byID map[string]string
	if err := json.Unmarshal(data, &byID); err != nil {
		return nil, services.Wrap(services.ErrInput, "broll", "load",
			"registry is neither an asset array nor an id map", err)
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := registry.Register(id, byID[id]); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
