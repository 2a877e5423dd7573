package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	chatbotx "github.com/tanpawarit/catalog-chatbot/agent/agents/chatbot"
	catalogx "github.com/tanpawarit/catalog-chatbot/agent/catalog"
	contractx "github.com/tanpawarit/catalog-chatbot/agent/contract"
)

var (
	askReq  chatbotx.Request
	askJSON bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Run one chatbot request and print the answer",
	Example: `  catalogbot ask --supplier-id 7
  catalogbot ask --brand acme
  catalogbot ask --query "what does Acme sell?"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if askReq.Query == "" && askReq.SupplierID == 0 && askReq.Brand == "" && askReq.ProductName == "" {
			return errors.New("one of --query, --supplier-id, --brand or --product-name is required")
		}

		rt, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		spinner, _ := pterm.DefaultSpinner.Start("Routing request...")
		res, err := rt.chatbot.Handle(cmd.Context(), askReq)
		if spinner != nil {
			_ = spinner.Stop()
		}
		if err != nil {
			return err
		}

		if askJSON {
			body, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(body))
			return nil
		}
		return renderResult(res)
	},
}

func renderResult(res chatbotx.Result) error {
	switch res.Kind {
	case chatbotx.ResultProducts:
		return pterm.DefaultTable.WithHasHeader().WithData(productTable(res.Products)).Render()
	case chatbotx.ResultSupplierSummary:
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Supplier")).
			WithPadding(1).
			Println(res.Text)
	case chatbotx.ResultSummary:
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Product")).
			WithPadding(1).
			Println(res.Text)
	default:
		pterm.Error.Println(contractx.PublicMessage(res.Err))
	}
	return nil
}

func productTable(products []catalogx.Product) [][]string {
	rows := make([][]string, 0, len(products)+1)
	rows = append(rows, []string{"ID", "Name", "Brand", "Category", "Price"})
	for _, p := range products {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Brand,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
		})
	}
	return rows
}

func init() {
	askCmd.Flags().StringVar(&askReq.Query, "query", "", "free-text question")
	askCmd.Flags().Int64Var(&askReq.SupplierID, "supplier-id", 0, "supplier id to summarize")
	askCmd.Flags().StringVar(&askReq.Brand, "brand", "", "brand substring to list products for")
	askCmd.Flags().StringVar(&askReq.ProductName, "product-name", "", "product name to summarize")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the raw response body")
	rootCmd.AddCommand(askCmd)
}
