// Package catalog holds the fixed, ordered set of lendable equipment items.
package catalog

import (
	_ "embed"
	"encoding/json"
	"equiplend/config"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed catalog.json
var catalogData []byte

type catalogFile struct {
	Equipment []string `json:"equipment"`
}

// Catalog is read-only once built. Position in the catalog defines the
// canonical order of items inside a reservation.
type Catalog struct {
	items []string
	index map[string]int
}

func New(items ...string) *Catalog {
	c := &Catalog{
		items: make([]string, 0, len(items)),
		index: make(map[string]int, len(items)),
	}

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if _, ok := c.index[item]; ok {
			continue
		}

		c.index[item] = len(c.items)
		c.items = append(c.items, item)
	}

	return c
}

// Get builds the catalog from APP_EQUIPMENT when configured, otherwise from the embedded list.
func Get(cfg *config.Config) *Catalog {
	if len(cfg.App.Equipment) > 0 {
		log.Info().Int("items", len(cfg.App.Equipment)).Msg("Loaded equipment catalog from configuration")

		return New(cfg.App.Equipment...)
	}

	var file catalogFile

	err := json.Unmarshal(catalogData, &file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode embedded equipment catalog")
	}

	log.Info().Int("items", len(file.Equipment)).Msg("Successfully loaded embedded equipment catalog")

	return New(file.Equipment...)
}

func (c *Catalog) Items() []string {
	return slices.Clone(c.items)
}

func (c *Catalog) Contains(item string) bool {
	_, ok := c.index[item]

	return ok
}

// Position returns the index of item, or Len() for items outside the catalog.
func (c *Catalog) Position(item string) int {
	if idx, ok := c.index[item]; ok {
		return idx
	}

	return len(c.items)
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Normalize de-duplicates items and sorts the known ones into catalog order.
// Items outside the catalog are returned separately, in first-seen order.
func (c *Catalog) Normalize(items []string) (known, unknown []string) {
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if _, ok := seen[item]; ok {
			continue
		}

		seen[item] = struct{}{}

		if c.Contains(item) {
			known = append(known, item)
		} else {
			unknown = append(unknown, item)
		}
	}

	slices.SortFunc(known, func(a, b string) int {
		return c.index[a] - c.index[b]
	})

	return known, unknown
}
