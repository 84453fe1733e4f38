// Package request has structs
package request

// PlaceOrder is the body of an order placement
type PlaceOrder struct {
	Stock    string `json:"stock"`
	Quantity int64  `json:"quantity"`
	Override bool   `json:"override"`
}

// LinkAccount carries the credentials of the financial institution
type LinkAccount struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// OrderResponse is the body returned by an order placement
type OrderResponse struct {
	Status string `json:"status"`
}
