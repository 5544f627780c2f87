// Package client implements an MCP client for a remote streamable HTTP endpoint secured with a
// bearer token.
//
// It adds on top of the JSON-RPC transport:
//   - Raw `Call` returning the decoded response message, whichever framing the server used.
//   - Typed `Initialize`, `ListTools`, `CallTool` and `Ping` helpers returning structured errors.
//   - Optional initialize-first sequencing and tool name validation.
//
// Example:
//
//	cli, _ := client.New("https://api.example.com/prod/mcp", token, client.WithTimeout(10*time.Second))
//	if _, err := cli.Initialize(ctx); err != nil {
//		return err
//	}
//	res, _ := cli.CallTool(ctx, "convert_usd_to_inr", map[string]interface{}{"amount": 100})
//	fmt.Println(res.Text())
package client
