package catalog

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"nova/db"
	"nova/models"
	"nova/utils"
)

const productPicDir = "static/productpic"

// UploadProductImage stores an uploaded image plus a 300px thumbnail and
// records both on the product. Admin only.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
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

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("image", "multipart form required"))
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("image", "image file required"))
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("image", "unreadable image data"))
		return
	}

	uniqueID := utils.GenerateRandomString(16)
	originalPath := filepath.Join(productPicDir, uniqueID+".jpg")
	thumbDir := filepath.Join(productPicDir, "thumb")
	thumbnailPath := filepath.Join(thumbDir, uniqueID+".jpg")

	if err := os.MkdirAll(thumbDir, 0755); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}
	if err := imaging.Save(img, originalPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	thumbImg := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumbImg, thumbnailPath); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	imageURL := fmt.Sprintf("/static/productpic/%s.jpg", uniqueID)
	thumbURL := fmt.Sprintf("/static/productpic/thumb/%s.jpg", uniqueID)

	_, err = db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{
			"$set":  bson.M{"thumbnail": thumbURL},
			"$push": bson.M{"images": imageURL},
		})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record image")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"image": imageURL, "thumbnail": thumbURL})
}
