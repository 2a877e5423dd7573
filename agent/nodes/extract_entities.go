package chatbotnode

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

// ExtractEntities fills SupplierName, Brand and ProductName from the free-text
// query. Fields the recognizer does not detect keep their request values.
func ExtractEntities(
	ctx context.Context,
	in *GraphState,
	recognizer contractx.EntityRecognizer,
) (*GraphState, error) {
	if in == nil {
		return nil, nilState()
	}
	if strings.TrimSpace(in.Query) == "" || recognizer == nil {
		return in, nil
	}

	entities, err := recognizer.Recognize(ctx, in.Query)
	if err != nil {
		log.Warn().Err(err).Msg("entity extraction failed, continuing with request fields")
		return in, nil
	}

	applyEntities(in, entities)
	log.Debug().
		Str("supplier_name", in.SupplierName).
		Str("brand", in.Brand).
		Str("product_name", in.ProductName).
		Int("entities", len(entities)).
		Msg("entities extracted")
	return in, nil
}

// applyEntities keeps the last entity seen for each label.
func applyEntities(in *GraphState, entities []contractx.Entity) {
	var supplierName, brand, productName string
	for _, e := range entities {
		word := strings.TrimSpace(e.Word)
		if word == "" {
			continue
		}
		switch strings.TrimSpace(e.Label) {
		case contractx.LabelOrganization:
			supplierName = word
		case contractx.LabelMiscellaneous:
			brand = word
		case contractx.LabelProduct:
			productName = word
		}
	}

	if supplierName != "" {
		in.SupplierName = supplierName
	}
	if brand != "" {
		in.Brand = brand
	}
	if productName != "" {
		in.ProductName = productName
	}
}
