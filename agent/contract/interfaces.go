package contract

import (
	"context"

	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
)

type EntityRecognizer interface {
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

type Summarizer interface {
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}

// Registry hands out the process-wide language collaborators.
type Registry interface {
	Recognizer() EntityRecognizer
	Summarizer() Summarizer
}

type CatalogStore interface {
	GetSupplier(ctx context.Context, id int64) (*catalogx.Supplier, error)
	FindProductsByBrand(ctx context.Context, brand string) ([]catalogx.Product, error)
	FindProductByName(ctx context.Context, name string) (*catalogx.Product, error)
}
