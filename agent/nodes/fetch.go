package chatbotnode

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

func FetchSupplier(
	ctx context.Context,
	in *GraphState,
	store contractx.CatalogStore,
) (*GraphState, error) {
	if in == nil {
		return nil, nilState()
	}
	if in.SupplierID == 0 {
		in.Err = contractx.MissingInput("Supplier ID is required")
		return in, nil
	}

	supplier, err := store.GetSupplier(ctx, in.SupplierID)
	if err != nil {
		in.Err = lookupError(err, "Supplier not found")
		return in, nil
	}

	in.SupplierData = supplier
	return in, nil
}

// FetchProducts is terminal: its product list (or error) is the run's result.
func FetchProducts(
	ctx context.Context,
	in *GraphState,
	store contractx.CatalogStore,
) (*GraphState, error) {
	if in == nil {
		return nil, nilState()
	}
	in.Terminal = TerminalProducts

	log.Info().Str("brand", in.Brand).Msg("Fetching products for brand")

	if in.Brand == "" {
		in.Err = contractx.MissingInput("Brand name is required")
		return in, nil
	}

	products, err := store.FindProductsByBrand(ctx, in.Brand)
	if err != nil {
		in.Err = lookupError(err, "")
		return in, nil
	}
	if len(products) == 0 {
		log.Error().Str("brand", in.Brand).Msg("No products found for brand")
		in.Err = contractx.NotFound(fmt.Sprintf("No products found for brand %s", in.Brand))
		return in, nil
	}

	log.Info().Int("count", len(products)).Msg("Fetched products")
	in.Products = products
	return in, nil
}

func FetchProductDetails(
	ctx context.Context,
	in *GraphState,
	store contractx.CatalogStore,
) (*GraphState, error) {
	if in == nil {
		return nil, nilState()
	}
	if in.ProductName == "" {
		in.Err = contractx.MissingInput("Product name is required")
		return in, nil
	}

	product, err := store.FindProductByName(ctx, in.ProductName)
	if err != nil {
		in.Err = lookupError(err, fmt.Sprintf("Product %s not found", in.ProductName))
		return in, nil
	}

	in.ProductDetails = product
	return in, nil
}

func lookupError(err error, notFoundMessage string) error {
	if errors.Is(err, catalogx.ErrRecordNotFound) && notFoundMessage != "" {
		return contractx.NotFound(notFoundMessage)
	}
	log.Error().Err(err).Msg("catalog lookup failed")
	return fmt.Errorf("%w: %v", contractx.ErrStore, err)
}
