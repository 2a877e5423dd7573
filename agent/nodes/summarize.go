package chatbotnode

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

// SummarizeSupplierInfo runs after FetchSupplier whether or not the fetch
// succeeded; an upstream error is passed through unchanged.
func SummarizeSupplierInfo(
	ctx context.Context,
	in *GraphState,
	summarizer contractx.Summarizer,
) (*GraphState, error) {
	if in == nil {
		return nil, nilState()
	}
	in.Terminal = TerminalSupplierSummary

	if in.Err != nil {
		return in, nil
	}
	if in.SupplierData == nil {
		in.Err = contractx.MissingInput("Missing supplier data")
		return in, nil
	}

	summary, err := summarize(ctx, summarizer, SupplierSummaryText(in.SupplierData))
	if err != nil {
		in.Err = err
		return in, nil
	}
	in.SupplierSummary = summary
	return in, nil
}

func SummarizeProductInfo(
	ctx context.Context,
	in *GraphState,
	summarizer contractx.Summarizer,
) (*GraphState, error) {
	if in == nil {
		return nil, nilState()
	}
	in.Terminal = TerminalProductSummary

	if in.Err != nil {
		return in, nil
	}
	if in.ProductDetails == nil {
		in.Err = contractx.MissingInput("Missing product data")
		return in, nil
	}

	summary, err := summarize(ctx, summarizer, ProductSummaryText(in.ProductDetails))
	if err != nil {
		in.Err = err
		return in, nil
	}
	in.Summary = summary
	return in, nil
}

func SupplierSummaryText(s *catalogx.Supplier) string {
	return fmt.Sprintf("Supplier %s specializes in %s. Contact: %s.",
		s.Name,
		orDefault(s.ProductCategories, "various products"),
		orDefault(s.ContactInfo, "N/A"),
	)
}

func ProductSummaryText(p *catalogx.Product) string {
	return fmt.Sprintf("Product %s is a %s from %s. It is priced at %s.",
		p.Name,
		orDefault(p.Category, "general item"),
		orDefault(p.Brand, "an unknown brand"),
		strconv.FormatFloat(p.Price, 'f', 2, 64),
	)
}

func summarize(ctx context.Context, summarizer contractx.Summarizer, text string) (string, error) {
	if summarizer == nil {
		return "", fmt.Errorf("%w: summarizer is not configured", contractx.ErrModelInvoke)
	}

	out, err := summarizer.Summarize(ctx, contractx.SummaryRequest{
		Text:          text,
		MinLength:     contractx.SummaryMinLength,
		MaxLength:     contractx.SummaryMaxLength,
		Deterministic: true,
	})
	if err != nil {
		log.Error().Err(err).Msg("summarization failed")
		if errors.Is(err, contractx.ErrModelInvoke) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: summary is empty", contractx.ErrModelInvoke)
	}
	return out, nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
