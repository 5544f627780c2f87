package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viant/mcpcognito"
)

type Options struct {
	Config       string   `short:"c" long:"config" description:"client options YAML URL"`
	URL          string   `short:"u" long:"url" env:"MCP_SERVER_URL" description:"mcp endpoint url"`
	Region       string   `short:"r" long:"region" env:"AWS_REGION" description:"user pool region"`
	UserPoolID   string   `short:"p" long:"user-pool" env:"COGNITO_USER_POOL_ID" description:"user pool id"`
	ClientID     string   `short:"i" long:"client-id" env:"OAUTH_CLIENT_ID" description:"user pool app client id"`
	ClientSecret string   `long:"client-secret" env:"OAUTH_CLIENT_SECRET" description:"user pool app client secret"`
	Username     string   `short:"U" long:"username" env:"COGNITO_USERNAME" description:"username"`
	Password     string   `short:"P" long:"password" env:"COGNITO_PASSWORD" description:"password"`
	Credentials  string   `short:"C" long:"credentials" description:"scy secret URL with username and password"`
	Key          string   `short:"k" long:"key" description:"credentials encryption key"`
	Tool         string   `short:"t" long:"tool" description:"tool to call"`
	Args         []string `short:"a" long:"arg" description:"tool argument as key=value, value is decoded as JSON when valid"`
	ArgsJSON     string   `short:"j" long:"args-json" description:"tool arguments as JSON object"`
	Timeout      int      `long:"timeout" description:"call timeout in seconds"`
	Health       bool     `long:"health" description:"check service health"`
	Verbose      bool     `short:"v" long:"verbose" description:"debug logging"`
}

// ClientOptions merges the config document with flags, flags take precedence
func (o *Options) ClientOptions(ctx context.Context) (*mcpcognito.ClientOptions, error) {
	ret := &mcpcognito.ClientOptions{}
	if o.Config != "" {
		loaded, err := mcpcognito.LoadClientOptions(ctx, o.Config)
		if err != nil {
			return nil, err
		}
		ret = loaded
	}
	if ret.Auth == nil {
		ret.Auth = &mcpcognito.ClientAuth{}
	}
	override(&ret.Endpoint, o.URL)
	override(&ret.Auth.Region, o.Region)
	override(&ret.Auth.UserPoolID, o.UserPoolID)
	override(&ret.Auth.ClientID, o.ClientID)
	override(&ret.Auth.ClientSecret, o.ClientSecret)
	override(&ret.Auth.Username, o.Username)
	override(&ret.Auth.Password, o.Password)
	override(&ret.Auth.CredentialsURL, o.Credentials)
	override(&ret.Auth.EncryptionKey, o.Key)
	if o.Timeout > 0 {
		ret.TimeoutSec = o.Timeout
	}
	return ret, nil
}

// Arguments returns tool arguments
func (o *Options) Arguments() (map[string]interface{}, error) {
	ret := map[string]interface{}{}
	if o.ArgsJSON != "" {
		if err := json.Unmarshal([]byte(o.ArgsJSON), &ret); err != nil {
			return nil, fmt.Errorf("invalid args-json: %w", err)
		}
	}
	for _, arg := range o.Args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q, expected key=value", arg)
		}
		var decoded interface{}
		if err := json.Unmarshal([]byte(value), &decoded); err != nil {
			decoded = value
		}
		ret[key] = decoded
	}
	return ret, nil
}

func override(target *string, value string) {
	if value != "" {
		*target = value
	}
}
