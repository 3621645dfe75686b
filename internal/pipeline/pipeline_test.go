package pipeline

import (
	"context"
	"strings"
	"testing"

	"leadsniper/internal/fallback"
	"leadsniper/internal/models"
	"leadsniper/internal/source"
)

// fakeSource returns canned candidates or a canned error.
type fakeSource struct {
	candidates []source.Candidate
	err        error
	gotQuery   string
	gotLimit   int
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Search(ctx context.Context, query string, limit int) ([]source.Candidate, error) {
	f.gotQuery = query
	f.gotLimit = limit
	return f.candidates, f.err
}

// scriptedScorer returns scores keyed by snippet substring, else a default.
type scriptedScorer struct {
	scores map[string]int
	def    int
}

func (s *scriptedScorer) Score(ctx context.Context, snippet, product string) int {
	for key, score := range s.scores {
		if strings.Contains(snippet, key) {
			return score
		}
	}
	return s.def
}

func candidates(n int) []source.Candidate {
	out := make([]source.Candidate, n)
	for i := range out {
		out[i] = source.Candidate{
			ID:    string(rune('a' + i)),
			Title: "post " + string(rune('a'+i)),
			URL:   "https://example.com/" + string(rune('a'+i)),
		}
	}
	return out
}

func TestRunScoresAndSorts(t *testing.T) {
	src := &fakeSource{candidates: []source.Candidate{
		{ID: "1", Title: "low intent", URL: "u1"},
		{ID: "2", Title: "high intent", Body: "need it today", URL: "u2"},
		{ID: "3", Title: "mid intent", URL: "u3"},
	}}
	scorer := &scriptedScorer{scores: map[string]int{"low": 10, "high": 90, "mid": 55}}

	p := New(src, scorer, Options{})
	leads := p.Run(context.Background(), models.SearchQuery{ProductDescription: "Notion"})

	if len(leads) != 3 {
		t.Fatalf("got %d leads, want 3", len(leads))
	}
	if leads[0].ID != "2" || leads[1].ID != "3" || leads[2].ID != "1" {
		t.Errorf("wrong order: %s %s %s", leads[0].ID, leads[1].ID, leads[2].ID)
	}
	if !strings.Contains(leads[0].Text, "need it today") {
		t.Errorf("snippet should concatenate title and body: %q", leads[0].Text)
	}
	if leads[0].SourceURL != "u2" {
		t.Errorf("SourceURL = %q, want u2", leads[0].SourceURL)
	}
	if src.gotQuery != "Notion" {
		t.Errorf("query = %q, want Notion", src.gotQuery)
	}
}

func TestRunStableOrderForTies(t *testing.T) {
	src := &fakeSource{candidates: candidates(5)}
	p := New(src, &scriptedScorer{def: 50}, Options{})

	leads := p.Run(context.Background(), models.SearchQuery{ProductDescription: "Notion"})

	for i, lead := range leads {
		if want := string(rune('a' + i)); lead.ID != want {
			t.Errorf("position %d: id %q, want %q (discovery order)", i, lead.ID, want)
		}
	}
}

func TestRunTruncatesToMaxResults(t *testing.T) {
	src := &fakeSource{candidates: candidates(8)}
	p := New(src, &scriptedScorer{def: 50}, Options{MaxResults: 4})

	leads := p.Run(context.Background(), models.SearchQuery{ProductDescription: "Notion"})
	if len(leads) != 4 {
		t.Errorf("got %d leads, want 4", len(leads))
	}
}

func TestRunFallsBackOnSourceError(t *testing.T) {
	src := &fakeSource{err: source.ErrSourceUnavailable}
	p := New(src, &scriptedScorer{def: 50}, Options{FallbackCount: 6})

	leads := p.Run(context.Background(), models.SearchQuery{ProductDescription: "Notion"})

	if len(leads) != 6 {
		t.Fatalf("got %d leads, want fallback batch of 6", len(leads))
	}
	for i, lead := range leads {
		if !strings.HasPrefix(lead.ID, fallback.IDPrefix) {
			t.Errorf("lead %d: id %q should be tagged synthetic", i, lead.ID)
		}
		if !strings.Contains(lead.Text, "Notion") {
			t.Errorf("lead %d: text %q should embed the product", i, lead.Text)
		}
		if lead.Score < fallback.ScoreMin || lead.Score > fallback.ScoreMax {
			t.Errorf("lead %d: score %d outside fallback band", i, lead.Score)
		}
	}
}

func TestRunFallsBackOnEmptyResult(t *testing.T) {
	src := &fakeSource{candidates: nil}
	p := New(src, &scriptedScorer{def: 50}, Options{})

	leads := p.Run(context.Background(), models.SearchQuery{ProductDescription: "Notion"})
	if len(leads) == 0 {
		t.Fatal("fallback should produce a non-empty batch")
	}
	for _, lead := range leads {
		if !lead.Synthetic {
			t.Errorf("lead %q should be synthetic", lead.ID)
		}
	}
}

func TestRunSortedDescending(t *testing.T) {
	src := &fakeSource{candidates: candidates(6)}
	scorer := &scriptedScorer{scores: map[string]int{
		"post a": 10, "post b": 99, "post c": 45, "post d": 99, "post e": 0, "post f": 70,
	}}
	p := New(src, scorer, Options{})

	leads := p.Run(context.Background(), models.SearchQuery{ProductDescription: "Notion"})

	for i := 1; i < len(leads); i++ {
		if leads[i].Score > leads[i-1].Score {
			t.Fatalf("not sorted descending at %d: %d > %d", i, leads[i].Score, leads[i-1].Score)
		}
	}
	// b discovered before d; both scored 99.
	if leads[0].ID != "b" || leads[1].ID != "d" {
		t.Errorf("tie should keep discovery order, got %s then %s", leads[0].ID, leads[1].ID)
	}
}

func TestRunEmptyProductUsesDefault(t *testing.T) {
	src := &fakeSource{candidates: candidates(1)}
	p := New(src, &scriptedScorer{def: 50}, Options{})

	p.Run(context.Background(), models.SearchQuery{})
	if src.gotQuery != "your product" {
		t.Errorf("query = %q, want default product", src.gotQuery)
	}
}

func TestRunPassesSearchLimit(t *testing.T) {
	src := &fakeSource{candidates: candidates(1)}
	p := New(src, &scriptedScorer{def: 50}, Options{SearchLimit: 7})

	p.Run(context.Background(), models.SearchQuery{ProductDescription: "Notion"})
	if src.gotLimit != 7 {
		t.Errorf("limit = %d, want 7", src.gotLimit)
	}
}
