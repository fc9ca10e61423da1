package discounts

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"goldenwine/errs"
	"goldenwine/utils"
)

type DiscountService struct {
	Validator *Validator
}

func NewDiscountService(v *Validator) *DiscountService {
	return &DiscountService{Validator: v}
}

// POST /api/discounts/validate
func (s *DiscountService) ValidateDiscount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	dc, err := s.Validator.Validate(ctx, body.Code)
	if err != nil {
		if errs.IsNotFound(err) {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": false})
			return
		}
		log.Printf("ValidateDiscount: %v", err)
		utils.RespondWithError(w, errs.StatusCode(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"valid": true, "discount": dc})
}
