package email

import "strings"

// SellInquiry is a homeowner asking the brokerage to list their property.
type SellInquiry struct {
	FirstName       string `json:"firstName" binding:"required,max=100"`
	LastName        string `json:"lastName" binding:"required,max=100"`
	Email           string `json:"email" binding:"required,email,max=255"`
	Phone           string `json:"phone" binding:"omitempty,max=50"`
	PropertyAddress string `json:"propertyAddress" binding:"required,max=255"`
	City            string `json:"city" binding:"omitempty,max=100"`
	State           string `json:"state" binding:"omitempty,max=50"`
	ZipCode         string `json:"zipCode" binding:"omitempty,max=20"`
	PropertyType    string `json:"propertyType" binding:"omitempty,max=100"`
	Bedrooms        string `json:"bedrooms" binding:"omitempty,max=10"`
	Bathrooms       string `json:"bathrooms" binding:"omitempty,max=10"`
	SquareFeet      string `json:"squareFeet" binding:"omitempty,max=20"`
	AskingPrice     string `json:"askingPrice" binding:"omitempty,max=50"`
	Timeline        string `json:"timeline" binding:"omitempty,max=100"`
	Description     string `json:"description" binding:"omitempty,max=5000"`
}

// BuyInquiry is a prospective buyer describing what they are looking for.
type BuyInquiry struct {
	FirstName         string `json:"firstName" binding:"required,max=100"`
	LastName          string `json:"lastName" binding:"required,max=100"`
	Email             string `json:"email" binding:"required,email,max=255"`
	Phone             string `json:"phone" binding:"omitempty,max=50"`
	PreferredLocation string `json:"preferredLocation" binding:"omitempty,max=255"`
	PropertyType      string `json:"propertyType" binding:"omitempty,max=100"`
	MinPrice          string `json:"minPrice" binding:"omitempty,max=50"`
	MaxPrice          string `json:"maxPrice" binding:"omitempty,max=50"`
	Bedrooms          string `json:"bedrooms" binding:"omitempty,max=10"`
	Bathrooms         string `json:"bathrooms" binding:"omitempty,max=10"`
	Timeline          string `json:"timeline" binding:"omitempty,max=100"`
	PreApproved       bool   `json:"preApproved"`
	Description       string `json:"description" binding:"omitempty,max=5000"`
}

// Message is a rendered email ready for a Transport.
type Message struct {
	FromName  string
	FromEmail string
	To        string
	ReplyTo   string
	Subject   string
	Text      string
	HTML      string
}

func fullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
