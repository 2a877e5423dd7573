package chatbot

import (
	"context"
	"errors"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
	nodex "github.com/tanpawarit/catalog-chatbot/agent/nodes"
	metricsx "github.com/tanpawarit/catalog-chatbot/pkg/metrics"
)

type Request struct {
	Query       string
	SupplierID  int64
	Brand       string
	ProductName string
}

type Chatbot struct {
	store  contractx.CatalogStore
	models contractx.Registry

	graphRunner compose.Runnable[nodex.GraphInput, *nodex.GraphState]
}

// New compiles the routing graph once; the returned Chatbot is safe for
// concurrent use as long as store and models are.
func New(store contractx.CatalogStore, models contractx.Registry) (*Chatbot, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	if models == nil {
		return nil, errors.New("model registry is required")
	}

	c := &Chatbot{
		store:  store,
		models: models,
	}

	graphRunner, err := c.compileRoutingGraph(context.Background())
	if err != nil {
		return nil, err
	}
	c.graphRunner = graphRunner

	return c, nil
}

// Handle runs the routing graph for one request. Lookup and summarization
// failures are reported inside the Result; the error return is reserved for
// the graph itself failing.
func (c *Chatbot) Handle(ctx context.Context, req Request) (Result, error) {
	st, err := c.graphRunner.Invoke(ctx, nodex.GraphInput{
		Query:       req.Query,
		SupplierID:  req.SupplierID,
		Brand:       req.Brand,
		ProductName: req.ProductName,
	})
	if err != nil {
		return Result{}, err
	}

	res := AssembleResult(st)
	route := string(res.Route)
	if route == "" {
		route = string(contractx.RouteNone)
	}
	metricsx.ChatbotRequests.WithLabelValues(route, string(res.Kind)).Inc()

	event := log.Info().
		Str("route", route).
		Str("terminal", string(res.Terminal)).
		Str("kind", string(res.Kind))
	if res.Err != nil {
		event = event.AnErr("result_error", res.Err)
	}
	event.Msg("Chatbot response")

	return res, nil
}
