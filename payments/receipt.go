package payments

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"krishi/db"
	"krishi/models"
	"krishi/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

// DownloadReceipt renders a PDF receipt for a gateway payment id. A QR code
// carrying the gateway ids is embedded so the receipt can be checked at
// delivery time.
func (p *PaymentService) DownloadReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	paymentID := ps.ByName("id")

	var payment models.OrderPayment
	err := db.OrderPaymentCollection.FindOne(ctx, bson.M{"razorpayPaymentId": paymentID}).Decode(&payment)
	if err != nil {
		utils.SendError(w, http.StatusNotFound, "Payment not found")
		return
	}

	var user models.User
	if payment.UserID != "" {
		_ = db.UserCollection.FindOne(ctx, bson.M{"userid": payment.UserID}).Decode(&user)
	}

	qrPayload := fmt.Sprintf("%s|%s|%s", payment.RazorpayOrderID, payment.RazorpayPaymentID, payment.Status)
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Receipt No: %s", payment.PaymentID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", payment.RazorpayOrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Payment ID: %s", payment.RazorpayPaymentID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Amount Paid: %.2f %s", float64(payment.Amount)/100, payment.Currency))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Status: %s", payment.Status))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s", payment.CreatedAt.Format(time.RFC1123)))
	pdf.Ln(12)

	if user.UserID != "" {
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 10, "Customer Details")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		pdf.Cell(0, 10, fmt.Sprintf("Name: %s", user.FullName))
		pdf.Ln(8)
		pdf.Cell(0, 10, fmt.Sprintf("Mobile: %s", user.MobileNumber))
		pdf.Ln(8)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+payment.PaymentID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
