package pricing

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"nova/models"
	"nova/utils"
)

// Quote prices the submitted cart lines. Unknown promo codes are rejected
// here, before they reach the engine.
func QuoteHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		Items []Line `json:"items"`
		Promo string `json:"promo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "malformed JSON"))
		return
	}
	if body.Promo != "" && !ValidCode(body.Promo) {
		utils.RespondWithAPIError(w, models.NewValidationError("promo", "unknown promo code"))
		return
	}
	for _, line := range body.Items {
		if line.Price < 0 || line.Qty < 1 {
			utils.RespondWithAPIError(w, models.NewValidationError("items", "price must be non-negative and qty at least 1"))
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, Compute(body.Items, body.Promo))
}
