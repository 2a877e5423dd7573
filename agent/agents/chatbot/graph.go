package chatbot

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
	nodex "github.com/tanpawarit/catalog-chatbot/agent/nodes"
	metricsx "github.com/tanpawarit/catalog-chatbot/pkg/metrics"
)

const (
	nodeReceiveRequest      = "receive_request"
	nodeExtractEntities     = "extract_entities"
	nodeFetchSupplier       = string(contractx.RouteFetchSupplier)
	nodeFetchProducts       = string(contractx.RouteFetchProducts)
	nodeFetchProductDetails = string(contractx.RouteFetchProductDetails)
	nodeNoRoute             = string(contractx.RouteNone)
	nodeSummarizeSupplier   = "summarize_supplier_info"
	nodeSummarizeProduct    = "summarize_product_info"
)

type stateStep = func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error)

func (c *Chatbot) compileRoutingGraph(
	ctx context.Context,
) (compose.Runnable[nodex.GraphInput, *nodex.GraphState], error) {
	graph := compose.NewGraph[nodex.GraphInput, *nodex.GraphState]()

	if err := graph.AddLambdaNode(nodeReceiveRequest,
		compose.InvokableLambda(func(ctx context.Context, in nodex.GraphInput) (*nodex.GraphState, error) {
			return nodex.ReceiveRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeReceiveRequest, err)
	}

	steps := []struct {
		name string
		fn   stateStep
	}{
		{nodeExtractEntities, func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.ExtractEntities(ctx, in, c.models.Recognizer())
		}},
		{nodeFetchSupplier, func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.FetchSupplier(ctx, in, c.store)
		}},
		{nodeFetchProducts, func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.FetchProducts(ctx, in, c.store)
		}},
		{nodeFetchProductDetails, func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.FetchProductDetails(ctx, in, c.store)
		}},
		{nodeNoRoute, func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.NoRoute(in)
		}},
		{nodeSummarizeSupplier, func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.SummarizeSupplierInfo(ctx, in, c.models.Summarizer())
		}},
		{nodeSummarizeProduct, func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return nodex.SummarizeProductInfo(ctx, in, c.models.Summarizer())
		}},
	}

	for _, step := range steps {
		if err := graph.AddLambdaNode(step.name, compose.InvokableLambda(timed(step.name, step.fn))); err != nil {
			return nil, fmt.Errorf("add node %s: %w", step.name, err)
		}
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			return nodex.RouteRequest(ctx, in)
		},
		map[string]bool{
			nodeFetchSupplier:       true,
			nodeFetchProducts:       true,
			nodeFetchProductDetails: true,
			nodeNoRoute:             true,
		},
	)
	if err := graph.AddBranch(nodeExtractEntities, branch); err != nil {
		return nil, fmt.Errorf("add routing branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, nodeReceiveRequest},
		{nodeReceiveRequest, nodeExtractEntities},
		{nodeFetchSupplier, nodeSummarizeSupplier},
		{nodeFetchProductDetails, nodeSummarizeProduct},
		{nodeFetchProducts, compose.END},
		{nodeSummarizeSupplier, compose.END},
		{nodeSummarizeProduct, compose.END},
		{nodeNoRoute, compose.END},
	}

	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("chatbot.route_request"))
	if err != nil {
		return nil, fmt.Errorf("compile chatbot graph: %w", err)
	}
	return runner, nil
}

func timed(name string, fn stateStep) stateStep {
	return func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
		start := time.Now()
		out, err := fn(ctx, in)
		metricsx.ChatbotNodeDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		return out, err
	}
}
