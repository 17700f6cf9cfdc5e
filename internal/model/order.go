package model

import "time"

// Order is the order header row. Orders are immutable once created; there is
// no update or delete surface for them.
type Order struct {
	ID            int64     `json:"id" db:"id"`
	CustomerEmail string    `json:"customerEmail" db:"customer_email"`
	CustomerName  string    `json:"customerName" db:"customer_name"`
	Branch        string    `json:"branch" db:"branch"`
	DeliveryDate  time.Time `json:"deliveryDate" db:"delivery_date"`
	SharedLink    *string   `json:"sharedLink" db:"shared_link"`
	Remarks       *string   `json:"remarks" db:"remarks"`
	TotalHours    int       `json:"totalHours" db:"total_hours"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// OrderItem is one line within an order.
type OrderItem struct {
	ID        int64 `json:"orderItemId" db:"id"`
	OrderID   int64 `json:"-" db:"order_id"`
	ProductID int64 `json:"productId" db:"product_id"`
	Quantity  int   `json:"quantity" db:"quantity"`
	Hours     int   `json:"hours" db:"hours"`
}

// OrderRequest is the request payload for creating an order.
type OrderRequest struct {
	CustomerEmail string             `json:"customerEmail"`
	CustomerName  string             `json:"customerName"`
	Branch        string             `json:"branch"`
	DeliveryDate  string             `json:"deliveryDate"`
	SharedLink    *string            `json:"sharedLink,omitempty"`
	Remarks       *string            `json:"remarks,omitempty"`
	Items         []OrderItemRequest `json:"items"`
}

// OrderItemRequest is a single line of an order request.
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
	Hours     int   `json:"hours"`
}

// OrderLine is one item of an order as presented to callers, denormalised
// with the product title and a renderable image reference.
type OrderLine struct {
	OrderItemID  int64   `json:"orderItemId"`
	ProductID    int64   `json:"productId"`
	ProductTitle string  `json:"productTitle"`
	Quantity     int     `json:"quantity"`
	Hours        int     `json:"hours"`
	ImageURL     *string `json:"imageUrl"`
}

// OrderItemDetail is a line item joined with its product metadata, as read
// back from the store for presentation.
type OrderItemDetail struct {
	OrderItemID      int64  `db:"id"`
	OrderID          int64  `db:"order_id"`
	ProductID        int64  `db:"product_id"`
	ProductTitle     string `db:"product_title"`
	Quantity         int    `db:"quantity"`
	Hours            int    `db:"hours"`
	ImageData        []byte `db:"image_data"`
	ImageContentType string `db:"image_content_type"`
}

// OrderView is one order as returned by the list endpoint.
type OrderView struct {
	ID            int64       `json:"id"`
	CustomerEmail string      `json:"customerEmail"`
	CustomerName  string      `json:"customerName"`
	Branch        string      `json:"branch"`
	DeliveryDate  string      `json:"deliveryDate"`
	SharedLink    *string     `json:"sharedLink"`
	Remarks       *string     `json:"remarks"`
	TotalHours    int         `json:"totalHours"`
	CreatedAt     time.Time   `json:"createdAt"`
	Items         []OrderLine `json:"items"`
}

// DeliveryDateFormat is the wire format for delivery dates. The delivery date
// is a calendar date with no time component.
const DeliveryDateFormat = "2006-01-02"

// TotalHours computes the derived order total over a validated item sequence.
// Callers must not invoke it on an empty sequence; the validator rejects
// empty item arrays before this is reached.
func TotalHours(items []OrderItemRequest) int {
	total := 0
	for _, item := range items {
		total += item.Quantity * item.Hours
	}
	return total
}
