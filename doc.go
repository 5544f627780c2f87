// Package mcpcognito provides an MCP client for remote streamable HTTP endpoints protected
// by an AWS Cognito user pool.
//
// The package glues the `auth` username/password authenticator with the `client` JSON-RPC
// client: NewClient authenticates once, attaches the session bearer token to every request
// and performs the initialize handshake. ClientOptions can be populated from CLI flags or
// loaded from a YAML document with LoadClientOptions.
//
// Example:
//
//	options, _ := mcpcognito.LoadClientOptions(ctx, "client.yaml")
//	cli, err := mcpcognito.NewClient(ctx, options)
//	if err != nil {
//		log.Fatal(err)
//	}
//	tools, _ := cli.ListTools(ctx, nil)
package mcpcognito
