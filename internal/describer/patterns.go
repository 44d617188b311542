package describer

// PatternTableVersion identifies the declaration order of DefaultPatterns.
// Reordering or editing entries changes output for ambiguous headers, so bump
// it whenever the table changes.
const PatternTableVersion = "1"

// PatternCategory groups related patterns for display.
type PatternCategory string

const (
	// CategoryIdentifier covers id-like fields.
	CategoryIdentifier PatternCategory = "identifier"
	// CategoryName covers name and title fields.
	CategoryName PatternCategory = "name"
	// CategoryMonetary covers amounts, prices and other money fields.
	CategoryMonetary PatternCategory = "monetary"
	// CategoryTemporal covers dates and timestamps.
	CategoryTemporal PatternCategory = "temporal"
	// CategoryContact covers email, phone and address fields.
	CategoryContact PatternCategory = "contact"
	// CategoryClassification covers status, type and category fields.
	CategoryClassification PatternCategory = "classification"
	// CategoryBusiness covers business entities such as vendors and orders.
	CategoryBusiness PatternCategory = "business"
	// CategoryQuantity covers counts and quantities.
	CategoryQuantity PatternCategory = "quantity"
	// CategoryFulfillment covers shipping, billing and delivery fields.
	CategoryFulfillment PatternCategory = "fulfillment"
)

// Pattern maps a canonical trigger to a description.
type Pattern struct {
	Trigger     string
	Description string
	Category    PatternCategory
}

// DefaultPatterns returns the built-in pattern table in declaration order.
// Earlier entries win when a header contains several triggers.
func DefaultPatterns() []Pattern {
	return []Pattern{
		// Identifiers
		{Trigger: "invoice_id", Description: "unique transaction identifier", Category: CategoryIdentifier},
		{Trigger: "order_id", Description: "unique order identifier", Category: CategoryIdentifier},
		{Trigger: "customer_id", Description: "unique customer identifier", Category: CategoryIdentifier},
		{Trigger: "product_id", Description: "unique product identifier", Category: CategoryIdentifier},
		{Trigger: "user_id", Description: "unique user identifier", Category: CategoryIdentifier},
		{Trigger: "vendor_id", Description: "unique vendor identifier", Category: CategoryIdentifier},
		{Trigger: "account_id", Description: "unique account identifier", Category: CategoryIdentifier},
		{Trigger: "transaction_id", Description: "unique transaction identifier", Category: CategoryIdentifier},
		{Trigger: "id", Description: "unique identifier", Category: CategoryIdentifier},
		{Trigger: "_id", Description: "unique identifier of a related record", Category: CategoryIdentifier},
		{Trigger: "sku", Description: "stock keeping unit identifier of the product", Category: CategoryIdentifier},

		// Names
		{Trigger: "vendor_name", Description: "the supplier or vendor associated with the transaction", Category: CategoryName},
		{Trigger: "customer_name", Description: "the customer associated with the transaction", Category: CategoryName},
		{Trigger: "product_name", Description: "the name of the product", Category: CategoryName},
		{Trigger: "company_name", Description: "the name of the company", Category: CategoryName},
		{Trigger: "name", Description: "name or title information", Category: CategoryName},

		// Monetary
		{Trigger: "amount", Description: "monetary value of the transaction", Category: CategoryMonetary},
		{Trigger: "price", Description: "price or cost of the item", Category: CategoryMonetary},
		{Trigger: "total", Description: "total amount", Category: CategoryMonetary},
		{Trigger: "subtotal", Description: "subtotal amount before taxes", Category: CategoryMonetary},
		{Trigger: "tax", Description: "tax amount", Category: CategoryMonetary},
		{Trigger: "discount", Description: "discount amount", Category: CategoryMonetary},
		{Trigger: "cost", Description: "cost of the item or service", Category: CategoryMonetary},
		{Trigger: "fee", Description: "fee amount", Category: CategoryMonetary},
		{Trigger: "charge", Description: "charge amount", Category: CategoryMonetary},
		{Trigger: "currency", Description: "currency in which the monetary values are expressed", Category: CategoryMonetary},

		// Temporal
		{Trigger: "payment_date", Description: "date on which the payment was made", Category: CategoryTemporal},
		{Trigger: "order_date", Description: "date when the order was placed", Category: CategoryTemporal},
		{Trigger: "invoice_date", Description: "date when the invoice was created", Category: CategoryTemporal},
		{Trigger: "due_date", Description: "date when payment is due", Category: CategoryTemporal},
		{Trigger: "created_date", Description: "date when the record was created", Category: CategoryTemporal},
		{Trigger: "updated_date", Description: "date when the record was last updated", Category: CategoryTemporal},
		{Trigger: "created_at", Description: "date and time when the record was created", Category: CategoryTemporal},
		{Trigger: "updated_at", Description: "date and time when the record was last updated", Category: CategoryTemporal},
		{Trigger: "date", Description: "date information", Category: CategoryTemporal},
		{Trigger: "timestamp", Description: "date and time at which the event occurred", Category: CategoryTemporal},

		// Contact
		{Trigger: "email", Description: "email address", Category: CategoryContact},
		{Trigger: "phone", Description: "phone number", Category: CategoryContact},
		{Trigger: "address", Description: "address information", Category: CategoryContact},
		{Trigger: "zip", Description: "postal code", Category: CategoryContact},
		{Trigger: "city", Description: "city name", Category: CategoryContact},
		{Trigger: "state", Description: "state or province", Category: CategoryContact},
		{Trigger: "country", Description: "country name", Category: CategoryContact},

		// Status and type
		{Trigger: "status", Description: "current status of the record", Category: CategoryClassification},
		{Trigger: "type", Description: "category or type classification", Category: CategoryClassification},
		{Trigger: "category", Description: "category classification", Category: CategoryClassification},
		{Trigger: "description", Description: "detailed description of the item", Category: CategoryClassification},
		{Trigger: "notes", Description: "free-form notes or comments", Category: CategoryClassification},

		// Business entities
		{Trigger: "vendor", Description: "supplier or vendor information", Category: CategoryBusiness},
		{Trigger: "supplier", Description: "supplier or vendor information", Category: CategoryBusiness},
		{Trigger: "customer", Description: "customer information", Category: CategoryBusiness},
		{Trigger: "payment", Description: "payment-related information", Category: CategoryBusiness},
		{Trigger: "invoice", Description: "invoice or billing information", Category: CategoryBusiness},
		{Trigger: "order", Description: "order information", Category: CategoryBusiness},
		{Trigger: "product", Description: "product information", Category: CategoryBusiness},
		{Trigger: "item", Description: "item information", Category: CategoryBusiness},
		{Trigger: "service", Description: "service information", Category: CategoryBusiness},

		// Quantities
		{Trigger: "quantity", Description: "quantity or count", Category: CategoryQuantity},
		{Trigger: "qty", Description: "quantity or count", Category: CategoryQuantity},
		{Trigger: "count", Description: "count or number", Category: CategoryQuantity},
		{Trigger: "number", Description: "numeric value", Category: CategoryQuantity},

		// Fulfillment
		{Trigger: "shipping", Description: "shipping information", Category: CategoryFulfillment},
		{Trigger: "billing", Description: "billing information", Category: CategoryFulfillment},
		{Trigger: "delivery", Description: "delivery information", Category: CategoryFulfillment},
	}
}
