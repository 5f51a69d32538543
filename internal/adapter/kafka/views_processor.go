package kafka

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/lovoo/goka"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

var _ port.ProductViewsProcessor = (*ProductViewsProcessor)(nil)

// A processor is used for composition.
//
// Running and closing the underlying [goka.Processor]
type processor struct {
	opPrefix string
	gp       *goka.Processor
}

func (p *processor) run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer wg.Done()

	go p.runProc(ctx, stopFn)

	log.Info("preparing...")
	p.waitForReady(ctx)
	log.Info("running")
}

func (p *processor) runProc(ctx context.Context, stopFn context.CancelFunc) {
	const op = "run"
	log := slog.With("op", makeOp(p.opPrefix, op))

	defer stopFn()

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p *processor) waitForReady(ctx context.Context) {
	const op = "waitForReady"
	log := slog.With("op", makeOp(p.opPrefix, op))

	err := p.gp.WaitForReadyContext(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Error("fall down while preparing", "err", err)
		return
	}
}

func (p *processor) close() {
	const op = "close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

// A viewEventCodec used for serde [schema.ProductViewV1]
type viewEventCodec struct {
	serde Serde
}

func newViewEventCodec(s Serde) viewEventCodec {
	return viewEventCodec{s}
}

func (c viewEventCodec) Encode(v any) ([]byte, error) {
	const op = "viewEventCodec.Encode"
	if _, ok := v.(schema.ProductViewV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c viewEventCodec) Decode(data []byte) (any, error) {
	const op = "viewEventCodec.Decode"
	var s schema.ProductViewV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, err
}

// A countValue is the cumulative view count for a product name.
type countValue int64

// A countValueCodec used for serde [countValue]
type countValueCodec struct{}

func (countValueCodec) Encode(v any) ([]byte, error) {
	const op = "countValueCodec.Encode"
	cv, ok := v.(countValue)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	data := strconv.AppendInt([]byte(nil), int64(cv), 10)
	return data, nil
}

func (countValueCodec) Decode(data []byte) (any, error) {
	const op = "countValueCodec.Decode"
	cv, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return countValue(cv), nil
}

// A ProductViewsProcessor accumulates view events
// from stream topic to the per-product group table.
type ProductViewsProcessor struct {
	opPrefix string
	proc     processor
}

func NewProductViewsProc(
	seedBrokers []string,
	inputStream string,
	groupTable string,
	productViewSerde Serde,
) (*ProductViewsProcessor, error) {
	const op = "NewProductViewsProcessor"

	var p ProductViewsProcessor
	p.opPrefix = "ProductViewsProcessor"

	gg := goka.DefineGroup(goka.Group(groupTable),
		goka.Input(
			goka.Stream(inputStream),
			newViewEventCodec(productViewSerde),
			p.processFn,
		),
		goka.Persist(countValueCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNoLogProcOpt())
	if err != nil {
		return nil, opErr(err, op)
	}

	p.proc = processor{
		opPrefix: p.opPrefix,
		gp:       gp,
	}

	return &p, nil
}

func (p *ProductViewsProcessor) Run(
	ctx context.Context, stopFn context.CancelFunc, wg *sync.WaitGroup,
) {
	p.proc.run(ctx, stopFn, wg)
}

func (p *ProductViewsProcessor) Close() {
	p.proc.close()
}

func (p *ProductViewsProcessor) processFn(ctx goka.Context, msg any) {
	const op = "processFn"
	log := slog.With("op", makeOp(p.opPrefix, op))

	event, _ := msg.(schema.ProductViewV1)

	count, _ := ctx.Value().(countValue)
	count++
	ctx.SetValue(count)

	log.Info(
		"view counted",
		"productName", event.ProductName,
		"views", int64(count),
	)
}
