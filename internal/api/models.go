package api

import "github.com/mkazantsev/bookmart-api/internal/domain"

// Common request/response structures

// RegisterSellerRequest defines the payload for the seller registration endpoint.
type RegisterSellerRequest struct {
	FirstName string `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string `json:"last_name"  validate:"required,min=1,max=50"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the token endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// TokenResponse defines the successful response for the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UpdateSellerRequest defines the payload for partial seller profile updates.
// Absent fields are left unchanged.
type UpdateSellerRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"last_name,omitempty"  validate:"omitempty,min=1,max=50"`
	Email     *string `json:"email,omitempty"      validate:"omitempty,email"`
}

// SellerResponse is the public representation of a seller.
// The password hash has no field here and can never leak.
type SellerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// SellerDetailResponse extends SellerResponse with the seller's books.
type SellerDetailResponse struct {
	SellerResponse
	Books []BookResponse `json:"books"`
}

// BookRequest defines the payload for creating or updating a book listing.
// There is no owner field; the owner is always the authenticated seller.
type BookRequest struct {
	Title  string `json:"title"  validate:"required,min=1,max=50"`
	Author string `json:"author" validate:"required,min=1,max=100"`
	Year   int    `json:"year"   validate:"required,gt=0"`
	Pages  int    `json:"pages"  validate:"required,gt=0"`
}

// BookResponse is the public representation of a book listing.
type BookResponse struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Year     int    `json:"year"`
	Pages    int    `json:"pages"`
	SellerID int64  `json:"seller_id"`
}

// BooksResponse wraps a list of books.
type BooksResponse struct {
	Books []BookResponse `json:"books"`
}

// SellersResponse wraps a list of sellers.
type SellersResponse struct {
	Sellers []SellerResponse `json:"sellers"`
}

func newSellerResponse(s *domain.Seller) SellerResponse {
	return SellerResponse{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Email:     s.Email,
	}
}

func newBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Year:     b.Year,
		Pages:    b.Pages,
		SellerID: b.SellerID,
	}
}

func newBookResponses(books []*domain.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, newBookResponse(b))
	}
	return out
}
