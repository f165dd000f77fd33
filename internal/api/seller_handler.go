package api

import (
	"errors"
	"net/http"

	"github.com/mkazantsev/bookmart-api/internal/api/shared"
	"github.com/mkazantsev/bookmart-api/internal/domain"
	"github.com/mkazantsev/bookmart-api/internal/service"
)

// SellerHandler handles seller account API requests.
type SellerHandler struct {
	sellerService service.SellerService
}

// NewSellerHandler creates a new SellerHandler with the given dependencies.
func NewSellerHandler(sellerService service.SellerService) *SellerHandler {
	return &SellerHandler{sellerService: sellerService}
}

// Create handles seller registration. The endpoint is public; the created
// account is returned without any credential material.
func (h *SellerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req RegisterSellerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	seller, err := h.sellerService.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newSellerResponse(seller))
}

// List handles the public seller listing.
func (h *SellerHandler) List(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.sellerService.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	out := make([]SellerResponse, 0, len(sellers))
	for _, s := range sellers {
		out = append(out, newSellerResponse(s))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SellersResponse{Sellers: out})
}

// GetDetail returns a seller with its books. Requires authentication but
// not ownership; any logged-in seller may view any profile.
func (h *SellerHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireCurrentSeller(w, r); !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid seller ID")
		return
	}

	seller, books, err := h.sellerService.GetDetail(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SellerDetailResponse{
		SellerResponse: newSellerResponse(seller),
		Books:          newBookResponses(books),
	})
}

// Update applies a partial profile update to the authenticated seller's
// own account.
func (h *SellerHandler) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := requireCurrentSeller(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid seller ID")
		return
	}

	var req UpdateSellerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	seller, err := h.sellerService.Update(r.Context(), current, id, domain.SellerUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newSellerResponse(seller))
}

// Delete removes the authenticated seller's own account together with all
// of its books.
func (h *SellerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current, ok := requireCurrentSeller(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid seller ID")
		return
	}

	if err := h.sellerService.Delete(r.Context(), current, id); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			shared.RespondWithError(w, r, http.StatusForbidden, "Not authorized to delete this seller")
			return
		}
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
