package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var (
	ErrTooFewOpts       = errors.New("too few options")
	ErrInvalidValueType = errors.New("invalid value type")
)

type ProducerClient interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

type ConsumerClient interface {
	PollFetches(context.Context) kgo.Fetches
	CommitUncommittedOffsets(context.Context) error
	Close()
}

type Encoder interface {
	Encode(v any) ([]byte, error)
}

type Decoder interface {
	Decode(b []byte, v any) error
}

type Serde interface {
	Encoder
	Decoder
}

type ProducerOpt func(*producerOpts) error

type producerOpts struct {
	cl      ProducerClient
	encoder Encoder
}

func ProducerClientOpt(
	ctx context.Context, seedBrokers []string, topic string,
) ProducerOpt {
	return func(opts *producerOpts) error {
		cl, err := kgo.NewClient(
			kgo.SeedBrokers(seedBrokers...),
			kgo.DefaultProduceTopicAlways(),
			kgo.DefaultProduceTopic(topic),
			kgo.RequiredAcks(kgo.AllISRAcks()),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx); err != nil {
			return err
		}
		opts.cl = cl
		return nil
	}
}

func ProducerEncoderOpt(encoder Encoder) ProducerOpt {
	return func(opts *producerOpts) error {
		if encoder == nil {
			return errors.New("encoder is nil")
		}
		opts.encoder = encoder
		return nil
	}
}

func withNoLogProcOpt() goka.ProcessorOption {
	return goka.WithLogger(log.New(io.Discard, "", 0))
}

func makeOp(s ...string) string {
	return strings.Join(s, ".")
}

func opErr(err error, op ...string) error {
	return fmt.Errorf("%s: %w", makeOp(op...), err)
}

func orderToSchemaV1(v domain.Order) (s schema.OrderV1) {
	s.OrderNumber = v.OrderNumber
	s.ClientID = v.ClientID
	s.ItemsTotal = v.ItemsTotal
	s.Shipping.ID = v.Shipping.ID
	s.Shipping.Name = v.Shipping.Name
	s.Shipping.Price = v.Shipping.Price
	s.Total = v.Total
	s.CreatedAt = v.CreatedAt.UTC().Format(time.RFC3339)

	s.Items = make([]schema.OrderItemV1, len(v.Items))
	for i, item := range v.Items {
		s.Items[i].ProductID = item.ProductID
		s.Items[i].Name = item.Name
		s.Items[i].UnitPrice = item.UnitPrice()
		s.Items[i].Quantity = item.Quantity
	}
	return
}

func orderFromSchemaV1(s schema.OrderV1) (v domain.Order, err error) {
	v.OrderNumber = s.OrderNumber
	v.ClientID = s.ClientID
	v.ItemsTotal = s.ItemsTotal
	v.Shipping.ID = s.Shipping.ID
	v.Shipping.Name = s.Shipping.Name
	v.Shipping.Price = s.Shipping.Price
	v.Total = s.Total
	v.CreatedAt, err = time.Parse(time.RFC3339, s.CreatedAt)
	if err != nil {
		return domain.Order{}, fmt.Errorf("invalid created_at: %w", err)
	}

	v.Items = make([]domain.CartItem, len(s.Items))
	for i, item := range s.Items {
		v.Items[i].ProductID = item.ProductID
		v.Items[i].Name = item.Name
		v.Items[i].Price = item.UnitPrice
		v.Items[i].Quantity = item.Quantity
	}
	return
}

func productViewToSchemaV1(v domain.ProductView) (s schema.ProductViewV1) {
	s.ClientID = v.ClientID
	s.ProductName = v.ProductName
	s.Category = v.Category
	s.Query = v.Query
	return
}

func orderMsgKey(orderNumber int64) []byte {
	return strconv.AppendInt([]byte(nil), orderNumber, 10)
}
