package reviews

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nova/db"
	"nova/models"
	"nova/utils"
)

const (
	maxAuthorLen  = 80
	maxCommentLen = 1000
)

// GetReviews lists a product's reviews, newest first.
func GetReviews(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	reviews, err := listReviews(ctx, productID)
	if err != nil {
		log.Println("GetReviews find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reviews": reviews})
}

// AddReview appends a review. No auth required; the rating is clamped into
// [1,5] and free-text fields are length-capped rather than rejected.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"productid": productID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check product")
		return
	}
	if count == 0 {
		utils.RespondWithAPIError(w, models.NewNotFoundError("product"))
		return
	}

	var body struct {
		Author  string `json:"author"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "malformed JSON"))
		return
	}

	review := Sanitize(productID, body.Author, body.Rating, body.Comment)
	review.ReviewID = utils.GetUUID()
	review.CreatedAt = time.Now()

	if _, err := db.ReviewsCollection.InsertOne(ctx, review); err != nil {
		log.Println("AddReview insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	// The cached rating projection is stale now.
	InvalidateRating(productID)

	reviews, err := listReviews(ctx, productID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve reviews")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"reviews": reviews})
}

// Sanitize clamps the rating into [1,5], caps free-text lengths, and
// defaults the author, mirroring what the storefront accepts.
func Sanitize(productID, author string, rating int, comment string) models.Review {
	if author == "" {
		author = "anonymous"
	}
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return models.Review{
		ProductID: productID,
		Author:    utils.Truncate(author, maxAuthorLen),
		Rating:    rating,
		Comment:   utils.Truncate(comment, maxCommentLen),
	}
}

func listReviews(ctx context.Context, productID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.ReviewsCollection.Find(ctx, bson.M{"productid": productID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
