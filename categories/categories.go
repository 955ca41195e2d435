package categories

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nova/db"
	"nova/models"
	"nova/utils"
)

// Merge unions product-derived and custom categories into one sorted,
// case-sensitive, deduplicated list.
func Merge(productCategories, customCategories []string) []string {
	seen := make(map[string]bool)
	merged := []string{}
	for _, list := range [][]string{productCategories, customCategories} {
		for _, name := range list {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			merged = append(merged, name)
		}
	}
	sort.Strings(merged)
	return merged
}

// ListCategories exposes the catalog filter's category list.
func ListCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	productCategories, err := distinctProductCategories(ctx)
	if err != nil {
		log.Println("ListCategories distinct error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	custom, err := customCategoryNames(ctx)
	if err != nil {
		log.Println("ListCategories custom error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"categories": Merge(productCategories, custom)})
}

func ListCustomCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	custom, err := customCategoryNames(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	sort.Strings(custom)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"categories": custom})
}

// AddCustomCategory is an idempotent insert: re-adding an existing name is a
// no-op, not an error. Admin only.
func AddCustomCategory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		utils.RespondWithAPIError(w, models.NewValidationError("name", "required"))
		return
	}

	_, err := db.CustomCategoriesCollection.UpdateOne(ctx,
		bson.M{"name": body.Name},
		bson.M{"$setOnInsert": bson.M{"name": body.Name}},
		options.Update().SetUpsert(true))
	if err != nil {
		log.Println("AddCustomCategory upsert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add category")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"ok": true})
}

// RemoveCustomCategory deletes unconditionally; removing an absent name is a
// no-op. Admin only.
func RemoveCustomCategory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.CustomCategoriesCollection.DeleteOne(ctx, bson.M{"name": ps.ByName("name")}); err != nil {
		log.Println("RemoveCustomCategory delete error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove category")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func distinctProductCategories(ctx context.Context) ([]string, error) {
	values, err := db.ProductsCollection.Distinct(ctx, "category", bson.M{"category": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(values))
	for _, v := range values {
		if name, ok := v.(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

func customCategoryNames(ctx context.Context) ([]string, error) {
	cursor, err := db.CustomCategoriesCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []models.CustomCategory
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	return names, nil
}
