package sales

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"goldenwine/errs"
	"goldenwine/globals"
	"goldenwine/models"
	"goldenwine/utils"
)

type SalesService struct {
	Ledger *Ledger
}

func NewSalesService(l *Ledger) *SalesService {
	return &SalesService{Ledger: l}
}

// POST /api/sales
func (s *SalesService) RecordSale(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var in RecordInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Person == "" {
		in.Person, _ = r.Context().Value(globals.UserNameKey).(string)
	}

	rec, err := s.Ledger.Record(ctx, &in)
	if err != nil {
		log.Printf("RecordSale: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, rec)
}

// GET /api/sales?person=|date=|start=&end=|week=true
func (s *SalesService) ListSales(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := r.URL.Query()
	var (
		list []models.SalesRecord
		err  error
	)
	switch {
	case q.Get("week") == "true":
		list, err = s.Ledger.ThisWeek(ctx)
	case q.Get("start") != "" && q.Get("end") != "":
		list, err = s.Ledger.ByDateRange(ctx, q.Get("start"), q.Get("end"))
	case q.Get("date") != "":
		list, err = s.Ledger.ByDate(ctx, q.Get("date"))
	case q.Get("person") != "":
		list, err = s.Ledger.ByPerson(ctx, q.Get("person"))
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "person, date, start+end or week=true is required")
		return
	}
	if err != nil {
		log.Printf("ListSales: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	if list == nil {
		list = []models.SalesRecord{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"sales": list})
}

// PUT /api/sales/:id
func (s *SalesService) EditSale(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var changes map[string]any
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := s.Ledger.Edit(ctx, ps.ByName("id"), changes)
	if err != nil {
		log.Printf("EditSale: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rec)
}

// PUT /api/sales/:id/approval (admin)
func (s *SalesService) SetApproval(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	approver, _ := r.Context().Value(globals.UserNameKey).(string)

	if err := s.Ledger.SetApproval(ctx, ps.ByName("id"), body.Status, body.Note, approver); err != nil {
		log.Printf("SetApproval: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"updated": true})
}

// DELETE /api/sales/:id (admin)
func (s *SalesService) DeleteSale(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := s.Ledger.Delete(ctx, ps.ByName("id")); err != nil {
		log.Printf("DeleteSale: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": true})
}
