package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"

	"nova/cart"
	"nova/models"
	"nova/mq"
	"nova/pricing"
	"nova/utils"
)

// Handlers serves order routes. It holds the cart store so a successful
// checkout can clear the submitting cart.
type Handlers struct {
	orders Store
	carts  cart.Store
}

func NewHandlers(orders Store, carts cart.Store) *Handlers {
	return &Handlers{orders: orders, carts: carts}
}

// Submit turns a cart into a persisted order. The order document embeds its
// items, so the upsert replaces header and lines in one atomic write;
// resubmitting the same id overwrites rather than duplicates. Validation
// failures abort before anything is persisted.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		utils.RespondWithAPIError(w, models.NewValidationError("body", "malformed JSON"))
		return
	}
	if sub.Promo != "" && !pricing.ValidCode(sub.Promo) {
		utils.RespondWithAPIError(w, models.NewValidationError("promo", "unknown promo code"))
		return
	}

	order, err := Validate(sub)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	// Anonymous checkout is allowed; identified orders keep their owner.
	order.UserID = utils.GetUserIDFromRequest(r)

	// Totals are evaluated from the stored snapshots, never from the
	// current catalog price.
	lines := make([]pricing.Line, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, pricing.Line{Price: item.PriceSnapshot, Qty: item.Quantity})
	}
	totals := pricing.Compute(lines, sub.Promo)
	order.Totals = &totals

	if err := h.orders.Put(ctx, order); err != nil {
		log.Println("Submit upsert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save order")
		return
	}

	if sub.CartID != "" {
		if err := h.carts.Clear(ctx, sub.CartID); err != nil {
			log.Println("Submit cart clear error:", err)
		}
	}

	go mq.EmitOrder(context.Background(), mq.OrderEvent{
		OrderID:   order.OrderID,
		Status:    order.Status,
		ItemCount: len(order.Items),
		Total:     totals.Total,
		Customer:  order.Customer.Name,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
	})

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// GetOrders lists all orders, newest first. Admin only.
func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.listOrders(w, r, "")
}

// GetMyOrders lists the calling user's orders.
func (h *Handlers) GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithAPIError(w, models.NewUnauthorizedError("login required"))
		return
	}
	h.listOrders(w, r, userID)
}

func (h *Handlers) listOrders(w http.ResponseWriter, r *http.Request, userID string) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	page, pageSize := parseOrderPagination(r)

	orders, total, err := h.orders.List(ctx, userID, page, pageSize)
	if err != nil {
		log.Println("listOrders error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": orders, "total": total})
}

// GetOrder returns one order to its owner or an admin. Anonymous orders are
// only reachable through the admin listing.
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	order, err := h.orders.Get(ctx, ps.ByName("orderId"))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if !canReadOrder(r, order) {
		utils.RespondWithAPIError(w, models.NewForbiddenError("not your order"))
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

func canReadOrder(r *http.Request, order models.Order) bool {
	if utils.IsAdminRequest(r) {
		return true
	}
	userID := utils.GetUserIDFromRequest(r)
	return userID != "" && order.UserID == userID
}

func parseOrderPagination(r *http.Request) (page, pageSize int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(q.Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
