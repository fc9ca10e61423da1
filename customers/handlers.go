package customers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"goldenwine/errs"
	"goldenwine/models"
	"goldenwine/utils"
)

type CustomerService struct {
	Resolver *Resolver
}

func NewCustomerService(rs *Resolver) *CustomerService {
	return &CustomerService{Resolver: rs}
}

// GET /api/customers?q=
func (s *CustomerService) SearchCustomers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	query := r.URL.Query().Get("q")
	results, source, err := s.Resolver.Search(ctx, query)
	if err != nil {
		log.Printf("SearchCustomers: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	if results == nil {
		results = []models.Customer{}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"source": source, "customers": results})
}

// GET /api/customers/:id
func (s *CustomerService) GetCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	customer, err := s.Resolver.Resolve(ctx, ps.ByName("id"))
	if err != nil {
		log.Printf("GetCustomer: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, customer)
}

// POST /api/customers
func (s *CustomerService) CreateCustomer(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var payload models.Customer
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := s.Resolver.Create(ctx, &payload)
	if err != nil {
		log.Printf("CreateCustomer: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

// PUT /api/customers/:id
func (s *CustomerService) UpdateCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var changes map[string]any
	if err := json.NewDecoder(r.Body).Decode(&changes); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.Resolver.Update(ctx, ps.ByName("id"), changes)
	if err != nil {
		log.Printf("UpdateCustomer: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
