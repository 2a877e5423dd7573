package chatbot

import (
	"encoding/json"

	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
	nodex "github.com/tanpawarit/catalog-chatbot/agent/nodes"
)

type ResultKind string

const (
	ResultProducts        ResultKind = "products"
	ResultSupplierSummary ResultKind = "supplier_summary"
	ResultSummary         ResultKind = "summary"
	ResultError           ResultKind = "error"
)

// Result is the outcome of one routing run. Exactly one of Products, Text
// (for the two summary kinds) or Err is meaningful, as selected by Kind.
type Result struct {
	Kind     ResultKind
	Products []catalogx.Product
	Text     string
	Err      error

	Route    contractx.Route
	Terminal nodex.Terminal
}

// AssembleResult picks the run's result field in order: products, supplier
// summary, product summary, error. A run that set none of them is reported
// as an unexpected response format.
func AssembleResult(st *nodex.GraphState) Result {
	if st == nil {
		return Result{Kind: ResultError, Err: contractx.UnexpectedFormat()}
	}

	res := Result{Route: st.Route, Terminal: st.Terminal}
	switch {
	case st.Products != nil:
		res.Kind = ResultProducts
		res.Products = st.Products
	case st.SupplierSummary != "":
		res.Kind = ResultSupplierSummary
		res.Text = st.SupplierSummary
	case st.Summary != "":
		res.Kind = ResultSummary
		res.Text = st.Summary
	case st.Err != nil:
		res.Kind = ResultError
		res.Err = st.Err
	default:
		res.Kind = ResultError
		res.Err = contractx.UnexpectedFormat()
	}
	return res
}

// MarshalJSON renders the single-key response body, e.g. {"products": [...]}.
func (r Result) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case ResultProducts:
		return json.Marshal(map[string]any{string(ResultProducts): r.Products})
	case ResultSupplierSummary, ResultSummary:
		return json.Marshal(map[string]string{string(r.Kind): r.Text})
	default:
		err := r.Err
		if err == nil {
			err = contractx.UnexpectedFormat()
		}
		return json.Marshal(map[string]string{string(ResultError): contractx.PublicMessage(err)})
	}
}
