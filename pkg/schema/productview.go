package schema

const ProductViewSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "product_view",
	"fields": [
		{"name": "client_id", "type": "string"},
		{"name": "product_name", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "query", "type": "string"}
	]
}`

type ProductViewV1 struct {
	ClientID    string `avro:"client_id"`
	ProductName string `avro:"product_name"`
	Category    string `avro:"category"`
	Query       string `avro:"query"`
}
