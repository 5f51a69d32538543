package schema

const OrderSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "order",
	"fields": [
		{"name": "order_number", "type": "long"},
		{"name": "client_id", "type": "string"},
		{"name": "items", "type": {"type": "array", "items": {
			"type": "record",
			"name": "order_item",
			"fields": [
				{"name": "product_id", "type": "string"},
				{"name": "name", "type": "string"},
				{"name": "unit_price", "type": "double"},
				{"name": "quantity", "type": "int"}
			]
		}}},
		{"name": "items_total", "type": "double"},
		{"name": "shipping", "type": {
			"type": "record",
			"name": "shipping_option",
			"fields": [
				{"name": "id", "type": "string"},
				{"name": "name", "type": "string"},
				{"name": "price", "type": "double"}
			]
		}},
		{"name": "total", "type": "double"},
		{"name": "created_at", "type": "string"}
	]
}`

type (
	OrderV1 struct {
		OrderNumber int64         `avro:"order_number"`
		ClientID    string        `avro:"client_id"`
		Items       []OrderItemV1 `avro:"items"`
		ItemsTotal  float64       `avro:"items_total"`
		Shipping    ShippingV1    `avro:"shipping"`
		Total       float64       `avro:"total"`
		CreatedAt   string        `avro:"created_at"`
	}

	OrderItemV1 struct {
		ProductID string  `avro:"product_id"`
		Name      string  `avro:"name"`
		UnitPrice float64 `avro:"unit_price"`
		Quantity  int     `avro:"quantity"`
	}

	ShippingV1 struct {
		ID    string  `avro:"id"`
		Name  string  `avro:"name"`
		Price float64 `avro:"price"`
	}
)
