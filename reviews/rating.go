package reviews

import (
	"context"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"nova/db"
	"nova/models"
	"nova/rdx"
)

const ratingCacheTTL = 10 * time.Minute

func RatingCacheKey(productID string) string {
	return "rating:" + productID
}

// GetRating returns a product's derived average and count. The aggregation
// result is cached in Redis and invalidated whenever a review is written, so
// repeated product reads stay cheap as review volume grows. A product with
// zero reviews yields {avg:0, count:0}.
func GetRating(ctx context.Context, productID string) (models.Rating, error) {
	if cached := rdx.RdxGet(RatingCacheKey(productID)); cached != "" {
		var rating models.Rating
		if err := json.Unmarshal([]byte(cached), &rating); err == nil {
			return rating, nil
		}
	}

	pipeline := []bson.M{
		{"$match": bson.M{"productid": productID}},
		{"$group": bson.M{
			"_id":   nil,
			"avg":   bson.M{"$avg": "$rating"},
			"count": bson.M{"$sum": 1},
		}},
	}
	cursor, err := db.ReviewsCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.Rating{}, err
	}
	defer cursor.Close(ctx)

	var results []models.Rating
	if err := cursor.All(ctx, &results); err != nil {
		return models.Rating{}, err
	}

	rating := models.Rating{}
	if len(results) > 0 {
		rating = results[0]
	}

	if data, err := json.Marshal(rating); err == nil {
		rdx.RdxSet(RatingCacheKey(productID), string(data), ratingCacheTTL)
	}
	return rating, nil
}

// InvalidateRating drops the cached projection after a review insert.
func InvalidateRating(productID string) {
	rdx.RdxDel(RatingCacheKey(productID))
}
