package catalog

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nova/db"
	"nova/models"
	"nova/rdx"
	"nova/reviews"
	"nova/utils"
)

type pagedProducts struct {
	Items []models.Product `bson:"items"`
	Total []struct {
		Count int `bson:"count"`
	} `bson:"total"`
}

// GetProducts runs the catalog query: filter, sort, paginate, and return the
// page slice together with the pre-pagination total.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	query := ParseQuery(r)

	cursor, err := db.ProductsCollection.Aggregate(ctx, BuildPipeline(query))
	if err != nil {
		log.Println("GetProducts aggregate error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to query products")
		return
	}

	var pages []pagedProducts
	if err := cursor.All(ctx, &pages); err != nil {
		log.Println("GetProducts decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read products")
		return
	}

	items := []models.Product{}
	total := 0
	if len(pages) > 0 {
		if pages[0].Items != nil {
			items = pages[0].Items
		}
		if len(pages[0].Total) > 0 {
			total = pages[0].Total[0].Count
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"items": items, "total": total})
}

func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithAPIError(w, models.NewNotFoundError("product"))
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}

	rating, err := reviews.GetRating(ctx, productID)
	if err != nil {
		log.Println("GetProduct rating error:", err)
	} else {
		product.Rating = rating
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// CreateProduct inserts a new catalog entry. Admin only; duplicate IDs are a
// conflict, never an overwrite.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "malformed JSON"))
		return
	}
	if product.ProductID == "" || product.Title == "" || product.Price < 0 {
		utils.RespondWithAPIError(w, models.NewValidationError("product", "id, title and a non-negative price are required"))
		return
	}

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{"productid": product.ProductID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check product")
		return
	}
	if count > 0 {
		utils.RespondWithAPIError(w, models.NewConflictError("duplicate product id"))
		return
	}

	if product.Currency == "" {
		product.Currency = "EUR"
	}
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Tags == nil {
		product.Tags = []string{}
	}
	product.Rating = models.Rating{}
	product.CreatedAt = time.Now()

	if _, err := db.ProductsCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// productUpdate carries the mutable product fields; nil means "leave as is".
type productUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Currency    *string   `json:"currency"`
	Category    *string   `json:"category"`
	Stock       *int      `json:"stock"`
	Thumbnail   *string   `json:"thumbnail"`
	Images      *[]string `json:"images"`
	Tags        *[]string `json:"tags"`
}

func (u productUpdate) fields() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.Currency != nil {
		set["currency"] = *u.Currency
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Stock != nil {
		set["stock"] = *u.Stock
	}
	if u.Thumbnail != nil {
		set["thumbnail"] = *u.Thumbnail
	}
	if u.Images != nil {
		set["images"] = *u.Images
	}
	if u.Tags != nil {
		set["tags"] = *u.Tags
	}
	return set
}

func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	var update productUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "malformed JSON"))
		return
	}
	if update.Price != nil && *update.Price < 0 {
		utils.RespondWithAPIError(w, models.NewValidationError("price", "must be non-negative"))
		return
	}

	set := update.fields()
	if len(set) > 0 {
		res, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productid": productID}, bson.M{"$set": set})
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update product")
			return
		}
		if res.MatchedCount == 0 {
			utils.RespondWithAPIError(w, models.NewNotFoundError("product"))
			return
		}
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithAPIError(w, models.NewNotFoundError("product"))
		return
	}
	if rating, err := reviews.GetRating(ctx, productID); err == nil {
		product.Rating = rating
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product and all of its reviews.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productID := ps.ByName("productId")

	res, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": productID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithAPIError(w, models.NewNotFoundError("product"))
		return
	}

	if _, err := db.ReviewsCollection.DeleteMany(ctx, bson.M{"productid": productID}); err != nil {
		log.Println("DeleteProduct reviews cleanup error:", err)
	}
	rdx.RdxDel(reviews.RatingCacheKey(productID))

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// ExportProducts dumps the whole catalog with derived ratings. Admin only.
func ExportProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	all := Query{Page: 1, PageSize: maxPageSize}
	products := []models.Product{}
	for {
		cursor, err := db.ProductsCollection.Aggregate(ctx, BuildPipeline(all))
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to export products")
			return
		}
		var pages []pagedProducts
		if err := cursor.All(ctx, &pages); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to export products")
			return
		}
		if len(pages) == 0 || len(pages[0].Items) == 0 {
			break
		}
		products = append(products, pages[0].Items...)
		if len(products) >= totalOf(pages[0]) {
			break
		}
		all.Page++
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": products})
}

func totalOf(p pagedProducts) int {
	if len(p.Total) > 0 {
		return p.Total[0].Count
	}
	return 0
}

// ImportProducts upserts a batch of products by ID. Admin only.
func ImportProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var payload struct {
		Products []models.Product `json:"products"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Products == nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "expected { products: [] }"))
		return
	}

	imported := 0
	for _, product := range payload.Products {
		if product.ProductID == "" {
			continue
		}
		if product.Currency == "" {
			product.Currency = "EUR"
		}
		if product.CreatedAt.IsZero() {
			product.CreatedAt = time.Now()
		}
		product.Rating = models.Rating{}
		if _, err := db.ProductsCollection.ReplaceOne(ctx,
			bson.M{"productid": product.ProductID},
			product,
			options.Replace().SetUpsert(true)); err != nil {
			log.Println("ImportProducts upsert error:", err)
			continue
		}
		imported++
	}

	count, err := db.ProductsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		count = int64(imported)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "count": count})
}
