package contract

const (
	LabelOrganization  = "B-ORG"
	LabelMiscellaneous = "B-MISC"
	LabelProduct       = "B-PRODUCT"
)

type Entity struct {
	Word  string `json:"word"`
	Label string `json:"entity"`
}

type SummaryRequest struct {
	Text          string `json:"text"`
	MinLength     int    `json:"min_length"`
	MaxLength     int    `json:"max_length"`
	Deterministic bool   `json:"deterministic"`
}

// Bounds used for every record summary.
const (
	SummaryMinLength = 20
	SummaryMaxLength = 50
)

type Route string

const (
	RouteFetchSupplier       Route = "fetch_supplier"
	RouteFetchProducts       Route = "fetch_products"
	RouteFetchProductDetails Route = "fetch_product_details"
	RouteNone                Route = "no_route"
)
