package domain

// Order statuses. Any transition between them is permitted; "Shipped" is a
// legacy value still accepted on read and counted as Processing in statistics.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
	StatusShipped    = "Shipped"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusDelivered, StatusCancelled, StatusShipped:
		return true
	}
	return false
}

// Payment methods.
const (
	PayCard = "card"
	PayUPI  = "upi"
	PayCOD  = "cod"
)

// Order is created once at checkout and is immutable afterwards except for
// OrderStatus. The order id is a random 6-digit number with no uniqueness
// guarantee, so rows are addressed by rowid internally.
type Order struct {
	RowID         int64   `db:"rowid" json:"id"`
	OrderID       int     `db:"order_id" json:"orderId"`
	FullName      string  `db:"full_name" json:"fullName"`
	Address       string  `db:"address" json:"address"`
	City          string  `db:"city" json:"city"`
	District      string  `db:"district" json:"district"`
	State         string  `db:"state" json:"state"`
	Pincode       string  `db:"pincode" json:"pincode"`
	Country       string  `db:"country" json:"country"`
	PaymentMethod string  `db:"payment_method" json:"paymentMethod"`
	PaymentStatus string  `db:"payment_status" json:"paymentStatus"` // Paid | Pending
	CardType      string  `db:"card_type" json:"cardType,omitempty"`
	CardLast4     string  `db:"card_last4" json:"cardLast4,omitempty"`
	UPIID         string  `db:"upi_id" json:"upiId,omitempty"`
	CouponCode    string  `db:"coupon_code" json:"couponCode,omitempty"`
	Discount      float64 `db:"discount" json:"discount"`
	Shipping      float64 `db:"shipping" json:"shipping"`
	TotalPrice    float64 `db:"total_price" json:"totalPrice"`
	Date          string  `db:"date" json:"date"` // RFC3339
	DeliveryDate  string  `db:"delivery_date" json:"deliveryDate"`
	OrderStatus   string  `db:"order_status" json:"orderStatus"`
	SessionID     string  `db:"session_id" json:"-"`

	Items []OrderItem `db:"-" json:"cartItems,omitempty"`
}

// OrderItem is a frozen copy of a cart line; later edits to the product do not
// reach historical orders.
type OrderItem struct {
	OrderRowID int64   `db:"order_rowid" json:"-"`
	ProductID  string  `db:"product_id" json:"productId"`
	Title      string  `db:"title" json:"title"`
	Image      string  `db:"image" json:"image"`
	UnitPrice  float64 `db:"unit_price" json:"price"`
	Qty        int     `db:"qty" json:"quantity"`
}

// LineTotal is the frozen amount for this line on receipts and invoices.
func (i OrderItem) LineTotal() float64 { return i.UnitPrice * float64(i.Qty) }
