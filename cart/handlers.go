package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"nova/models"
	"nova/utils"
)

// Handlers serves cart routes against a caller-owned Store.
type Handlers struct {
	store Store
}

func NewHandlers(store Store) *Handlers {
	return &Handlers{store: store}
}

func (h *Handlers) Store() Store {
	return h.store
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.store.Get(ctx, ps.ByName("cartId"))
	if err != nil {
		log.Println("GetCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cart)
}

// AddLine merges a line into the cart: an existing product gains quantity, a
// new product is appended.
func (h *Handlers) AddLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var line models.CartLine
	if err := json.NewDecoder(r.Body).Decode(&line); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "malformed JSON"))
		return
	}
	if line.ProductID == "" {
		utils.RespondWithAPIError(w, models.NewValidationError("id", "product id required"))
		return
	}
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if line.PriceSnapshot < 0 {
		utils.RespondWithAPIError(w, models.NewValidationError("priceSnapshot", "must be non-negative"))
		return
	}

	cart, err := h.store.AddLine(ctx, ps.ByName("cartId"), line)
	if err != nil {
		log.Println("AddLine error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, cart)
}

func (h *Handlers) UpdateQuantity(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var body struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "malformed JSON"))
		return
	}

	cart, err := h.store.UpdateQuantity(ctx, ps.ByName("cartId"), ps.ByName("productId"), body.Qty)
	if err != nil {
		log.Println("UpdateQuantity error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cart)
}

func (h *Handlers) RemoveLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := h.store.RemoveLine(ctx, ps.ByName("cartId"), ps.ByName("productId"))
	if err != nil {
		log.Println("RemoveLine error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, cart)
}

func (h *Handlers) ClearCart(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.store.Clear(ctx, ps.ByName("cartId")); err != nil {
		log.Println("ClearCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
