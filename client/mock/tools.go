package mock

import (
	"context"
	"fmt"

	"github.com/viant/mcpcognito/protocol"
)

// USDToINRRate is the fixed rate used by ConvertUSDToINR
const USDToINRRate = 83.12

// ConvertUSDToINR returns a currency conversion tool answering with a single text item
func ConvertUSDToINR() *Tool {
	return &Tool{
		Name:        "convert_usd_to_inr",
		Description: "Convert an amount in US dollars to Indian rupees",
		Handler: func(ctx context.Context, arguments map[string]interface{}) (*protocol.CallToolResult, error) {
			amount, ok := arguments["amount"].(float64)
			if !ok {
				return nil, fmt.Errorf("amount must be a number")
			}
			text := fmt.Sprintf("%.2f USD = %.2f INR", amount, amount*USDToINRRate)
			return &protocol.CallToolResult{Content: []protocol.ContentItem{protocol.NewTextContent(text)}}, nil
		},
	}
}

// Echo returns a tool answering with the message argument as text
func Echo() *Tool {
	return &Tool{
		Name: "echo",
		Handler: func(ctx context.Context, arguments map[string]interface{}) (*protocol.CallToolResult, error) {
			return &protocol.CallToolResult{Content: []protocol.ContentItem{protocol.NewTextContent(fmt.Sprint(arguments["message"]))}}, nil
		},
	}
}
