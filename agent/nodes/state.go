package chatbotnode

import (
	"fmt"

	"github.com/rs/zerolog/log"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

type GraphInput struct {
	Query       string
	SupplierID  int64
	Brand       string
	ProductName string
}

// Terminal names the node a run ended on.
type Terminal string

const (
	TerminalNone            Terminal = ""
	TerminalProducts        Terminal = "fetch_products"
	TerminalSupplierSummary Terminal = "summarize_supplier_info"
	TerminalProductSummary  Terminal = "summarize_product_info"
	TerminalNoRoute         Terminal = "no_route"
)

// GraphState is the request context threaded through one routing run.
// At most one of Products, SupplierSummary, Summary and Err is set when the
// run ends.
type GraphState struct {
	Query        string
	SupplierID   int64
	Brand        string
	ProductName  string
	SupplierName string

	SupplierData   *catalogx.Supplier
	ProductDetails *catalogx.Product

	Products        []catalogx.Product
	SupplierSummary string
	Summary         string
	Err             error

	Route    contractx.Route
	Terminal Terminal
}

func ReceiveRequest(in GraphInput) (*GraphState, error) {
	log.Info().Msg("Starting chatbot execution.")

	return &GraphState{
		Query:       in.Query,
		SupplierID:  in.SupplierID,
		Brand:       in.Brand,
		ProductName: in.ProductName,
	}, nil
}

func nilState() error {
	return fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
}
