package domain

import "errors"

// Book field validation errors.
var (
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrEmptyAuthor   = errors.New("author cannot be empty")
	ErrInvalidYear   = errors.New("year must be positive")
	ErrInvalidPages  = errors.New("pages must be positive")
	ErrMissingSeller = errors.New("book must reference an owning seller")
)

// Book represents a listing owned by exactly one seller.
type Book struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Year     int    `json:"year"`
	Pages    int    `json:"pages"`
	SellerID int64  `json:"seller_id"`
}

// NewBook creates a Book owned by the given seller.
// The ID is zero until the store assigns one on insert.
func NewBook(title, author string, year, pages int, sellerID int64) (*Book, error) {
	book := &Book{
		Title:    title,
		Author:   author,
		Year:     year,
		Pages:    pages,
		SellerID: sellerID,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// Validate checks that the Book has valid data.
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrEmptyTitle
	}
	if b.Author == "" {
		return ErrEmptyAuthor
	}
	if b.Year <= 0 {
		return ErrInvalidYear
	}
	if b.Pages <= 0 {
		return ErrInvalidPages
	}
	if b.SellerID == 0 {
		return ErrMissingSeller
	}
	return nil
}
