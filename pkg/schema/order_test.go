package schema

import (
	"testing"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderV1(t *testing.T) {
	vMarshal := OrderV1{
		OrderNumber: 123456,
		ClientID:    "testClientID",
		Items: []OrderItemV1{
			{
				ProductID: "testProductID",
				Name:      "testName",
				UnitPrice: 99.99,
				Quantity:  2,
			},
		},
		ItemsTotal: 199.98,
		Shipping: ShippingV1{
			ID:    "express",
			Name:  "Express Shipping",
			Price: 12.99,
		},
		Total:     212.97,
		CreatedAt: "2025-11-20T10:00:00Z",
	}

	orderSchema, err := avro.Parse(OrderSchemaTextV1)
	require.NoError(t, err)

	data, err := avro.Marshal(orderSchema, vMarshal)
	require.NoError(t, err)

	var vUnmarshal OrderV1
	err = avro.Unmarshal(orderSchema, data, &vUnmarshal)
	require.NoError(t, err)

	assert.Equal(t, vMarshal, vUnmarshal)
}

func TestProductViewV1(t *testing.T) {
	vMarshal := ProductViewV1{
		ClientID:    "testClientID",
		ProductName: "testName",
		Category:    "testCategory",
		Query:       "test",
	}

	viewSchema, err := avro.Parse(ProductViewSchemaTextV1)
	require.NoError(t, err)

	data, err := avro.Marshal(viewSchema, vMarshal)
	require.NoError(t, err)

	var vUnmarshal ProductViewV1
	err = avro.Unmarshal(viewSchema, data, &vUnmarshal)
	require.NoError(t, err)

	assert.Equal(t, vMarshal, vUnmarshal)
}
