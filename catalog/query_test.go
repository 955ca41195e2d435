package catalog

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestParseQueryDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products", nil)
	q := ParseQuery(r)

	if q.Page != 1 || q.PageSize != 12 {
		t.Errorf("defaults = page %d size %d, want 1/12", q.Page, q.PageSize)
	}
	if q.Sort != "newest" {
		t.Errorf("default sort = %q, want newest", q.Sort)
	}
	if q.Search != "" || q.Category != "" || q.MinRating != 0 {
		t.Errorf("default filters not empty: %+v", q)
	}
}

func TestParseQueryClamping(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		page     int
		pageSize int
	}{
		{"negative page", "/api/products?page=-3", 1, 12},
		{"zero page", "/api/products?page=0", 1, 12},
		{"garbage page", "/api/products?page=abc", 1, 12},
		{"oversized pageSize", "/api/products?pageSize=500", 1, 50},
		{"zero pageSize", "/api/products?pageSize=0", 1, 12},
		{"valid values", "/api/products?page=3&pageSize=24", 3, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ParseQuery(httptest.NewRequest("GET", tt.url, nil))
			if q.Page != tt.page || q.PageSize != tt.pageSize {
				t.Errorf("got page %d size %d, want %d/%d", q.Page, q.PageSize, tt.page, tt.pageSize)
			}
		})
	}
}

func TestNormalizeSort(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"newest", "newest"},
		{"price-asc", "price-asc"},
		{"price-desc", "price-desc"},
		{"rating-desc", "rating-desc"},
		{"relevance", "newest"},
		{"", "newest"},
		{"bogus", "newest"},
	}

	for _, tt := range tests {
		if got := normalizeSort(tt.in); got != tt.want {
			t.Errorf("normalizeSort(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortStageTiebreak(t *testing.T) {
	for _, key := range []string{"newest", "price-asc", "price-desc", "rating-desc"} {
		stage := sortStage(key)
		last := stage[len(stage)-1]
		if last.Key != "productid" {
			t.Errorf("sortStage(%q) missing productid tiebreak, got %v", key, stage)
		}
	}
}

// facetOf unpacks the trailing $facet stage of a pipeline.
func facetOf(t *testing.T, pipeline mongo.Pipeline) bson.M {
	t.Helper()
	if len(pipeline) == 0 {
		t.Fatal("empty pipeline")
	}
	last := pipeline[len(pipeline)-1]
	if last[0].Key != "$facet" {
		t.Fatalf("last stage = %q, want $facet", last[0].Key)
	}
	facet, ok := last[0].Value.(bson.M)
	if !ok {
		t.Fatalf("facet value is %T, want bson.M", last[0].Value)
	}
	return facet
}

func TestBuildPipelineFacetsPage(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		wantSkip int
	}{
		{"first page", 1, 10, 0},
		{"third page", 3, 10, 20},
		{"far beyond the last page", 999, 50, 49900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Query{Search: "bulb", Category: "lighting", MinRating: 4, Sort: "price-asc", Page: tt.page, PageSize: tt.pageSize}
			facet := facetOf(t, BuildPipeline(q))

			items, ok := facet["items"].(bson.A)
			if !ok || len(items) != 2 {
				t.Fatalf("items facet = %v, want [$skip, $limit]", facet["items"])
			}
			if skip := items[0].(bson.M)["$skip"]; skip != tt.wantSkip {
				t.Errorf("$skip = %v, want %d", skip, tt.wantSkip)
			}
			if limit := items[1].(bson.M)["$limit"]; limit != tt.pageSize {
				t.Errorf("$limit = %v, want %d", limit, tt.pageSize)
			}

			// The total branch counts the filtered set before any skip or
			// limit, so a page beyond the end still reports the real total
			// alongside its empty items slice.
			total, ok := facet["total"].(bson.A)
			if !ok || len(total) != 1 {
				t.Fatalf("total facet = %v, want a single $count", facet["total"])
			}
			if count := total[0].(bson.M)["$count"]; count != "count" {
				t.Errorf("$count field = %v, want %q", count, "count")
			}
		})
	}
}

func TestBuildPipelineNoFilterMatchesAll(t *testing.T) {
	pipeline := BuildPipeline(Query{Sort: "newest", Page: 1, PageSize: 12})
	first := pipeline[0]
	if first[0].Key == "$match" {
		t.Errorf("unfiltered query should not start with $match, got %v", first)
	}
}
