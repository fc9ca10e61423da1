package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"goldenwine/errs"
	"goldenwine/globals"
	"goldenwine/invoice"
	"goldenwine/models"
	"goldenwine/notify"
	"goldenwine/qr"
	"goldenwine/utils"
)

type OrderService struct {
	Rec        *Reconciler
	Dispatcher *notify.Dispatcher
	QR         qr.Config
}

func NewOrderService(rec *Reconciler, dispatcher *notify.Dispatcher, qrCfg qr.Config) *OrderService {
	return &OrderService{Rec: rec, Dispatcher: dispatcher, QR: qrCfg}
}

// POST /api/orders
func (s *OrderService) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var in CreateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	in.CreatedBy, _ = r.Context().Value(globals.UserIDKey).(string)
	in.CreatedByName, _ = r.Context().Value(globals.UserNameKey).(string)

	order, err := s.Rec.Create(ctx, &in)
	if err != nil {
		log.Printf("CreateOrder: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// GET /api/orders/:id
func (s *OrderService) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := s.Rec.Get(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// GET /api/orders?customer_id= or ?start=&end=
func (s *OrderService) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query()
	var (
		list []models.Order
		err  error
	)
	switch {
	case q.Get("customer_id") != "":
		list, err = s.Rec.ListByCustomer(ctx, q.Get("customer_id"))
	case q.Get("start") != "" && q.Get("end") != "":
		var start, end time.Time
		start, err = parseWhen(q.Get("start"), false)
		if err == nil {
			end, err = parseWhen(q.Get("end"), true)
		}
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "start/end must be RFC3339 or YYYY-MM-DD")
			return
		}
		list, err = s.Rec.ListByRange(ctx, start, end)
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "customer_id or start+end is required")
		return
	}
	if err != nil {
		log.Printf("ListOrders: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": list})
}

func parseWhen(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return t, nil
}

// PUT /api/orders/:id
func (s *OrderService) UpdateOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		FinancialStatus string `json:"financial_status"`
		Note            string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, err := s.Rec.UpdateStatus(ctx, ps.ByName("id"), body.FinancialStatus, body.Note)
	if err != nil {
		log.Printf("UpdateOrder: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// POST /api/orders/:id/send-invoice
func (s *OrderService) SendInvoice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	order, err := s.Rec.Get(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	if err := s.Dispatcher.OrderPaid(ctx, order); err != nil {
		log.Printf("SendInvoice: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"sent": true})
}

func (s *OrderService) paymentInfo(o *models.Order) (payload, addInfo string) {
	addInfo = fmt.Sprintf("Thanh toan don hang %s", shortRef(o.ID))
	return s.QR.PaymentURL(o.TotalPrice, addInfo), addInfo
}

func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// GET /api/orders/:id/qr
func (s *OrderService) OrderQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := s.Rec.Get(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	url, addInfo := s.paymentInfo(order)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"url":      url,
		"amount":   order.TotalPrice,
		"add_info": addInfo,
	})
}

// GET /api/orders/:id/qr.png
func (s *OrderService) OrderQRPNG(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := s.Rec.Get(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	url, _ := s.paymentInfo(order)
	png, err := qr.PaymentPNG(url, 256)
	if err != nil {
		log.Printf("OrderQRPNG: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate QR code")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// GET /api/orders/:id/invoice.pdf
func (s *OrderService) OrderInvoicePDF(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := s.Rec.Get(ctx, ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}

	var qrPNG []byte
	if order.FinancialStatus == models.StatusPending {
		url, _ := s.paymentInfo(order)
		if png, err := qr.PaymentPNG(url, 256); err == nil {
			qrPNG = png
		} else {
			log.Printf("OrderInvoicePDF: QR generation failed for %s: %v", order.ID, err)
		}
	}

	pdf, err := invoice.Render(order, order.CustomerID, qrPNG)
	if err != nil {
		log.Printf("OrderInvoicePDF: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=invoice-"+shortRef(order.ID)+".pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
