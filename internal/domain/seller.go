package domain

import "errors"

// Seller field validation errors.
var (
	ErrEmptyFirstName      = errors.New("first name cannot be empty")
	ErrEmptyLastName       = errors.New("last name cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Seller represents a registered seller account that may own book listings.
// The password hash is never serialized; only the store layer reads it.
type Seller struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	HashedPassword string `json:"-"`
}

// NewSeller creates a Seller with the given profile fields and an already
// hashed password. The caller is responsible for hashing; a plaintext
// password must never reach this constructor.
// The ID is zero until the store assigns one on insert.
func NewSeller(firstName, lastName, email, hashedPassword string) (*Seller, error) {
	seller := &Seller{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		HashedPassword: hashedPassword,
	}

	if err := seller.Validate(); err != nil {
		return nil, err
	}

	return seller, nil
}

// Validate checks that the Seller has all required fields.
// Format checks (email shape, field lengths) belong to the API layer's
// request validation; this guards the entity's own invariants.
func (s *Seller) Validate() error {
	if s.FirstName == "" {
		return ErrEmptyFirstName
	}
	if s.LastName == "" {
		return ErrEmptyLastName
	}
	if s.Email == "" {
		return ErrEmptyEmail
	}
	if s.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// SellerUpdate carries a partial profile update. Nil fields are left
// unchanged.
type SellerUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Apply copies the non-nil fields onto the seller.
func (u SellerUpdate) Apply(s *Seller) {
	if u.FirstName != nil {
		s.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		s.LastName = *u.LastName
	}
	if u.Email != nil {
		s.Email = *u.Email
	}
}
