package orders

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"nova/globals"
	"nova/models"
	"nova/utils"
)

// qrPayload signs the order reference so a scanned pickup code can be
// verified against tampering.
func qrPayload(order models.Order) string {
	data := fmt.Sprintf("%s|%d", order.OrderID, order.CreatedAt.Unix())
	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s|%s", data, sig)
}

// PrintInvoice renders an order as a PDF receipt with a signed QR code.
// Owner or admin only.
func (h *Handlers) PrintInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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

	qrPNG, err := qrcode.Encode(qrPayload(order), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Nova Store - Order Receipt")
	pdf.Ln(14)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Order: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Placed: %s", order.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(8)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", order.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Deliver to")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, order.Customer.Name)
	pdf.Ln(6)
	pdf.Cell(0, 6, order.Customer.Address)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("%s / %s", order.Customer.Email, order.Customer.Phone))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Items")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.Cell(0, 6, fmt.Sprintf("%s  x%d  @ %.2f", item.ProductID, item.Quantity, item.PriceSnapshot))
		pdf.Ln(6)
	}

	if order.Totals != nil {
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Subtotal: %.2f", order.Totals.Subtotal))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Tax: %.2f", order.Totals.Tax))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Shipping: %.2f", order.Totals.Shipping))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("Discount: -%.2f", order.Totals.Discount))
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("Total: %.2f", order.Totals.Total))
	}

	payMethod := order.Payment.Method
	if order.Payment.Last4 != "" {
		payMethod = fmt.Sprintf("%s ending %s", payMethod, order.Payment.Last4)
	}
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Payment: %s", payMethod))

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("order-qr", imgOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("order-qr", 155, 15, 40, 40, false, imgOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render invoice")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", order.OrderID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
