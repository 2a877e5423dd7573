package chatbotnode

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

// DecideRoute picks the fetch step by fixed priority: supplier id, then
// brand, then product name.
func DecideRoute(in *GraphState) contractx.Route {
	if in == nil {
		return contractx.RouteNone
	}
	switch {
	case in.SupplierID != 0:
		return contractx.RouteFetchSupplier
	case strings.TrimSpace(in.Brand) != "":
		return contractx.RouteFetchProducts
	case strings.TrimSpace(in.ProductName) != "":
		return contractx.RouteFetchProductDetails
	default:
		return contractx.RouteNone
	}
}

func RouteRequest(ctx context.Context, in *GraphState) (string, error) {
	if in == nil {
		return "", nilState()
	}

	log.Info().
		Int64("supplier_id", in.SupplierID).
		Str("brand", in.Brand).
		Str("product_name", in.ProductName).
		Msg("Deciding route based on inputs")

	route := DecideRoute(in)
	in.Route = route
	if route == contractx.RouteNone {
		log.Warn().Msg("No valid input detected for routing.")
	} else {
		log.Info().Msgf("Routing to %s", route)
	}
	return string(route), nil
}

// NoRoute ends a run that had nothing to look up. No result field is set.
func NoRoute(in *GraphState) (*GraphState, error) {
	if in == nil {
		return nil, nilState()
	}
	in.Terminal = TerminalNoRoute
	return in, nil
}
