package catalog

import (
	"net/http"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

// Query is a normalized catalog request. Out-of-range or missing parameters
// degrade to permissive defaults, so a well-formed request never fails.
type Query struct {
	Search    string
	Category  string
	MinRating float64
	Sort      string
	Page      int
	PageSize  int
}

// ParseQuery normalizes the q/category/rating/sort/page/pageSize parameters.
func ParseQuery(r *http.Request) Query {
	params := r.URL.Query()

	page, _ := strconv.Atoi(params.Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(params.Get("pageSize"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	rating, _ := strconv.ParseFloat(params.Get("rating"), 64)
	if rating < 0 {
		rating = 0
	}

	return Query{
		Search:    params.Get("q"),
		Category:  params.Get("category"),
		MinRating: rating,
		Sort:      normalizeSort(params.Get("sort")),
		Page:      page,
		PageSize:  pageSize,
	}
}

func normalizeSort(sort string) string {
	switch sort {
	case "price-asc", "price-desc", "rating-desc":
		return sort
	}
	// "relevance" carries no server ordering; fall back to newest.
	return "newest"
}

// sortStage maps a sort key onto a Mongo sort document. The productid
// tiebreak keeps pagination stable across repeated identical requests.
func sortStage(sort string) bson.D {
	switch sort {
	case "price-asc":
		return bson.D{{Key: "price", Value: 1}, {Key: "productid", Value: 1}}
	case "price-desc":
		return bson.D{{Key: "price", Value: -1}, {Key: "productid", Value: 1}}
	case "rating-desc":
		return bson.D{{Key: "rating.avg", Value: -1}, {Key: "productid", Value: 1}}
	}
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "productid", Value: 1}}
}

// BuildPipeline translates a Query into the aggregation that joins reviews,
// derives each product's rating, filters, sorts, and facets one page of
// items together with the pre-pagination total.
func BuildPipeline(q Query) mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	match := bson.M{}
	if q.Search != "" {
		search := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		match["$or"] = bson.A{
			bson.M{"title": search},
			bson.M{"description": search},
		}
	}
	if q.Category != "" {
		match["category"] = q.Category
	}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "reviews",
			"localField":   "productid",
			"foreignField": "productid",
			"as":           "productReviews",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"rating.avg":   bson.M{"$ifNull": bson.A{bson.M{"$avg": "$productReviews.rating"}, 0}},
			"rating.count": bson.M{"$size": "$productReviews"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"productReviews": 0}}},
	)

	if q.MinRating > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"rating.avg": bson.M{"$gte": q.MinRating},
		}}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: sortStage(q.Sort)}},
		bson.D{{Key: "$facet", Value: bson.M{
			"items": bson.A{
				bson.M{"$skip": (q.Page - 1) * q.PageSize},
				bson.M{"$limit": q.PageSize},
			},
			"total": bson.A{bson.M{"$count": "count"}},
		}}},
	)

	return pipeline
}
