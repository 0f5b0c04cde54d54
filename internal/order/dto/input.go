package dto

type CheckoutInput struct {
	Line1      string
	City       string
	State      string
	PostalCode string
}
