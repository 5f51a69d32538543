package schema_test

import (
	"context"
	"testing"

	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeOrderV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("IdentifierAndSubjectOpts", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderSchemaTextV1,
		).Return(schemaID, nil)

		_, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaID := 1
		subject := "testTopic-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderSchemaTextV1,
		).Return(schemaID, nil)

		serde, err := schema.NewSerdeOrderV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		orderValue1 := schema.OrderV1{
			OrderNumber: 654321,
			ClientID:    "testClientID",
			Items: []schema.OrderItemV1{
				{
					ProductID: "testProductID",
					Name:      "testName",
					UnitPrice: 49.99,
					Quantity:  3,
				},
			},
			ItemsTotal: 149.97,
			Shipping: schema.ShippingV1{
				ID:    "standard",
				Name:  "Standard Shipping",
				Price: 4.99,
			},
			Total:     154.96,
			CreatedAt: "2025-11-20T10:00:00Z",
		}

		encodedData, err := serde.Encode(orderValue1)
		require.NoError(t, err)

		var orderValue2 schema.OrderV1
		err = serde.Decode(encodedData, &orderValue2)
		require.NoError(t, err)

		assert.Equal(t, orderValue1.OrderNumber, orderValue2.OrderNumber)
		assert.Equal(t, orderValue1.ClientID, orderValue2.ClientID)
		assert.Equal(t, orderValue1.ItemsTotal, orderValue2.ItemsTotal)
		assert.Equal(t, orderValue1.Shipping, orderValue2.Shipping)
		assert.Equal(t, orderValue1.Total, orderValue2.Total)
		assert.Equal(t, orderValue1.CreatedAt, orderValue2.CreatedAt)

		require.Len(t, orderValue2.Items, len(orderValue1.Items))
		for i, v := range orderValue2.Items {
			assert.Equal(t, orderValue1.Items[i], v)
		}
	})
}

func TestSerdeProductViewV1(t *testing.T) {
	schemaIdentifier := new(MockSchemaIdentifier)
	schemaID := 2
	subject := "viewsTopic-value"

	schemaIdentifier.On(
		"DetermineID", t.Context(), subject, schema.ProductViewSchemaTextV1,
	).Return(schemaID, nil)

	serde, err := schema.NewSerdeProductViewV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	require.NoError(t, err)

	viewValue1 := schema.ProductViewV1{
		ClientID:    "testClientID",
		ProductName: "testName",
		Category:    "testCategory",
		Query:       "test",
	}

	encodedData, err := serde.Encode(viewValue1)
	require.NoError(t, err)

	var viewValue2 schema.ProductViewV1
	err = serde.Decode(encodedData, &viewValue2)
	require.NoError(t, err)

	assert.Equal(t, viewValue1, viewValue2)
}
