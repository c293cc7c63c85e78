// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entities finds the geo-political entities an article references
// and ranks them by mention frequency.
package entities

import (
	"fmt"
	"sort"

	"github.com/jdkato/prose/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/wikilearn/pkg/types"
)

// Places runs a named-entity pass over text and returns the unique
// GPE-labeled entities in descending frequency order, at most max entries.
func Places(text string, max int) ([]types.PlaceCount, error) {
	if text == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("tagging article text: %w", err)
	}

	caser := cases.Title(language.English)
	counts := make(map[string]int)
	for _, ent := range doc.Entities() {
		if ent.Label != "GPE" {
			continue
		}
		counts[caser.String(ent.Text)]++
	}
	return Rank(counts, max), nil
}

// Rank orders place counts by descending frequency. Ties break
// alphabetically so output is deterministic.
func Rank(counts map[string]int, max int) []types.PlaceCount {
	ranked := make([]types.PlaceCount, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, types.PlaceCount{Name: name, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if max > 0 && len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked
}
