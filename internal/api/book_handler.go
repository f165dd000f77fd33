package api

import (
	"net/http"

	"github.com/mkazantsev/bookmart-api/internal/api/shared"
	"github.com/mkazantsev/bookmart-api/internal/service"
)

// BookHandler handles book listing API requests.
type BookHandler struct {
	bookService service.BookService
}

// NewBookHandler creates a new BookHandler with the given dependencies.
func NewBookHandler(bookService service.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

// Create adds a new listing owned by the authenticated seller. The owner
// is taken from the request context, never from the payload.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	current, ok := requireCurrentSeller(w, r)
	if !ok {
		return
	}

	var req BookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.bookService.Create(r.Context(), current, service.BookFields{
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
		Pages:  req.Pages,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newBookResponse(book))
}

// List handles the public book listing.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BooksResponse{Books: newBookResponses(books)})
}

// Get returns a single book by ID. Public.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid book ID")
		return
	}

	book, err := h.bookService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newBookResponse(book))
}

// Update replaces a book's listing fields. Owner only.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := requireCurrentSeller(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid book ID")
		return
	}

	var req BookRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	book, err := h.bookService.Update(r.Context(), current, id, service.BookFields{
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
		Pages:  req.Pages,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newBookResponse(book))
}

// Delete removes a book. Owner only.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	current, ok := requireCurrentSeller(w, r)
	if !ok {
		return
	}

	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Invalid book ID")
		return
	}

	if err := h.bookService.Delete(r.Context(), current, id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
