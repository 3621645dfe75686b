// Package fallback synthesizes plausible leads when the external search
// source yields nothing. Synthesized leads are presentation filler, tagged
// so they can never be mistaken for externally sourced data.
package fallback

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"leadsniper/internal/models"
)

// IDPrefix tags every synthesized lead id.
const IDPrefix = "synthetic-"

// Score band for synthesized leads.
const (
	ScoreMin = 50
	ScoreMax = 99

	markerBias = 10
)

// Marker substrings that nudge synthesized scores upward. Heuristic only;
// nothing else depends on it.
var markers = []string{"alternative", "competitor", "switch from"}

var templates = []string{
	"Looking for an alternative to %s, the pricing just doesn't work for us anymore.",
	"%s is too expensive for what it does. What are people using instead?",
	"Does %s actually work for small teams? Considering buying this week.",
	"We're evaluating %s against two competitors, need to decide by Friday.",
	"Just cancelled our old tool, is %s worth switching to?",
	"My cofounder keeps pushing %s, anyone here paying for it and happy?",
	"Budget approved for something like %s, open to recommendations.",
	"Tried the free tier of %s, about to upgrade unless there's a better option.",
}

// Synthesize generates count leads embedding product, scores pre-assigned
// from the [ScoreMin,ScoreMax] band. Template choice and scores are
// randomized per call; only the shape is deterministic.
func Synthesize(product string, count int) []models.Lead {
	bias := 0
	lowered := strings.ToLower(product)
	for _, marker := range markers {
		if strings.Contains(lowered, marker) {
			bias = markerBias
			break
		}
	}

	leads := make([]models.Lead, count)
	for i := range leads {
		score := ScoreMin + rand.IntN(ScoreMax-ScoreMin+1) + bias
		if score > ScoreMax {
			score = ScoreMax
		}
		leads[i] = models.Lead{
			ID:        IDPrefix + uuid.NewString(),
			Text:      fmt.Sprintf(templates[rand.IntN(len(templates))], product),
			Score:     score,
			Synthetic: true,
		}
	}
	return leads
}
