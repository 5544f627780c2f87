package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authmock "github.com/viant/mcpcognito/auth/mock"
	"github.com/viant/mcpcognito/client/mock"
	"github.com/viant/mcpcognito/protocol"
)

var signingKey = []byte("cli-signing-key")

func newRunner() (*Runner, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	provider := authmock.New("us-east-1_pool", "client123", "client-secret-value", signingKey,
		&authmock.User{Username: "alice", Password: "password-value"})
	return &Runner{Stdout: stdout, Stderr: stderr, API: provider}, stdout, stderr
}

func credentialArgs(endpoint string) []string {
	return []string{
		"--url", endpoint,
		"--user-pool", "us-east-1_pool",
		"--client-id", "client123",
		"--client-secret", "client-secret-value",
		"--username", "alice",
		"--password", "password-value",
	}
}

func TestRunner_Run(t *testing.T) {
	server := mock.NewHTTPTestServer(
		mock.WithImplementation("currency-converter", "1.0.0"),
		mock.WithSigningKey(signingKey),
		mock.WithFraming(protocol.FramingSSE),
		mock.WithTool(mock.ConvertUSDToINR()),
		mock.WithTool(&mock.Tool{Name: "get_weather"}),
	)
	defer server.Close()

	runner, stdout, stderr := newRunner()
	args := append(credentialArgs(server.Endpoint), "--tool", "convert_usd_to_inr", "--arg", "amount=100", "--health", "--verbose")
	require.NoError(t, runner.Run(context.Background(), args))

	output := stdout.String()
	assert.Contains(t, output, "currency-converter 1.0.0")
	assert.Contains(t, output, "Health: healthy (currency-converter)")
	assert.Contains(t, output, "Tools: 2")
	assert.Contains(t, output, "convert_usd_to_inr: Convert an amount in US dollars to Indian rupees")
	assert.Contains(t, output, "get_weather: No description")
	assert.Contains(t, output, "100.00 USD = 8312.00 INR")

	logged := stderr.String()
	assert.NotEmpty(t, logged)
	for _, secret := range []string{"password-value", "client-secret-value"} {
		assert.NotContains(t, output, secret)
		assert.NotContains(t, logged, secret)
	}
}

func TestRunner_ToolError(t *testing.T) {
	server := mock.NewHTTPTestServer(mock.WithSigningKey(signingKey), mock.WithTool(mock.ConvertUSDToINR()))
	defer server.Close()
	runner, stdout, _ := newRunner()
	args := append(credentialArgs(server.Endpoint), "--tool", "convert_usd_to_inr", "--arg", "amount=lots")
	err := runner.Run(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be a number")
	assert.Contains(t, stdout.String(), "amount must be a number")
}

func TestRunner_AuthFailure(t *testing.T) {
	server := mock.NewHTTPTestServer(mock.WithSigningKey(signingKey))
	defer server.Close()
	runner, _, _ := newRunner()
	args := credentialArgs(server.Endpoint)
	args[len(args)-1] = "wrong-password"
	err := runner.Run(context.Background(), args)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect username or password.")
	assert.NotContains(t, err.Error(), "wrong-password")
}

func TestOptions_Arguments(t *testing.T) {
	options := &Options{
		ArgsJSON: `{"currency":"INR","amount":1}`,
		Args:     []string{"amount=100", "note=hello world", "flags=[1,2]"},
	}
	arguments, err := options.Arguments()
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"currency": "INR",
		"amount":   float64(100),
		"note":     "hello world",
		"flags":    []interface{}{float64(1), float64(2)},
	}, arguments)

	_, err = (&Options{Args: []string{"novalue"}}).Arguments()
	assert.Error(t, err)
	_, err = (&Options{ArgsJSON: "{"}).Arguments()
	assert.Error(t, err)
}
