package mcpcognito

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/viant/mcpcognito/auth"
	"github.com/viant/mcpcognito/auth/store"
	authtransport "github.com/viant/mcpcognito/auth/transport"
	"github.com/viant/mcpcognito/client"
	"github.com/viant/scy"
	"github.com/viant/scy/cred"
)

const (
	defaultName          = "mcpcognito"
	defaultVersion       = "1.0.0"
	defaultTimeout       = 30
	defaultHealthTimeout = 5
)

// ClientOptions
//
// defines options for configuring an authenticated MCP client.
type ClientOptions struct {
	Name             string      `yaml:"name,omitempty" json:"name,omitempty"`
	Version          string      `yaml:"version,omitempty" json:"version,omitempty"`
	ProtocolVersion  string      `yaml:"protocol,omitempty" json:"protocol,omitempty"`
	Endpoint         string      `yaml:"endpoint" json:"endpoint"`
	TimeoutSec       int         `yaml:"timeoutSec,omitempty" json:"timeoutSec,omitempty"`
	HealthTimeoutSec int         `yaml:"healthTimeoutSec,omitempty" json:"healthTimeoutSec,omitempty"`
	Auth             *ClientAuth `yaml:"auth,omitempty" json:"auth,omitempty"`

	Logger *slog.Logger `yaml:"-" json:"-"`
}

// ClientAuth defines user pool authentication options for an MCP client.
type ClientAuth struct {
	Region       string `yaml:"region,omitempty" json:"region,omitempty"`
	UserPoolID   string `yaml:"userPoolId" json:"userPoolId"`
	ClientID     string `yaml:"clientId" json:"clientId"`
	ClientSecret string `yaml:"clientSecret,omitempty" json:"clientSecret,omitempty"`
	Username     string `yaml:"username,omitempty" json:"username,omitempty"`
	Password     string `yaml:"password,omitempty" json:"password,omitempty"`

	// CredentialsURL locates a scy basic secret (username/password), EncryptionKey decrypts it
	CredentialsURL string `yaml:"credentialsURL,omitempty" json:"credentialsURL,omitempty"`
	EncryptionKey  string `yaml:"encryptionKey,omitempty" json:"encryptionKey,omitempty"`

	// API replaces the Cognito client, Store the session token store
	API   auth.InitiateAuthAPI `yaml:"-" json:"-"`
	Store store.Store          `yaml:"-" json:"-"`
}

func (c *ClientOptions) Init() {
	if c.Name == "" {
		c.Name = defaultName
		c.Version = defaultVersion
	}
	if c.TimeoutSec <= 0 {
		c.TimeoutSec = defaultTimeout
	}
	if c.HealthTimeoutSec <= 0 {
		c.HealthTimeoutSec = defaultHealthTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Validate checks required options
func (c *ClientOptions) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint was empty")
	}
	if c.Auth == nil {
		return fmt.Errorf("auth was empty")
	}
	return nil
}

// Credentials returns user pool credentials, username and password missing from options are loaded from CredentialsURL
func (c *ClientAuth) Credentials(ctx context.Context) (*auth.Credentials, error) {
	ret := &auth.Credentials{
		UserPoolID:   c.UserPoolID,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Username:     c.Username,
		Password:     c.Password,
	}
	if c.CredentialsURL == "" || (ret.Username != "" && ret.Password != "") {
		return ret, nil
	}
	basic, err := loadBasic(ctx, c.CredentialsURL, c.EncryptionKey)
	if err != nil {
		return nil, err
	}
	if ret.Username == "" {
		ret.Username = basic.Username
	}
	if ret.Password == "" {
		ret.Password = basic.Password
	}
	return ret, nil
}

func loadBasic(ctx context.Context, URL, key string) (*cred.Basic, error) {
	resource := scy.NewResource(cred.Basic{}, URL, key)
	secret, err := scy.New().Load(ctx, resource)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials %v: %w", URL, err)
	}
	switch actual := secret.Target.(type) {
	case *cred.Basic:
		return actual, nil
	case cred.Basic:
		return &actual, nil
	}
	return nil, fmt.Errorf("unsupported credentials type %T at %v", secret.Target, URL)
}

// NewSession authenticates and returns the session backing an MCP client
func NewSession(ctx context.Context, options *ClientOptions) (*auth.Session, error) {
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	credentials, err := options.Auth.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	var authenticator *auth.Authenticator
	if options.Auth.API != nil {
		authenticator = auth.New(options.Auth.API, auth.WithLogger(options.Logger))
	} else if authenticator, err = auth.Load(ctx, options.Auth.Region, auth.WithLogger(options.Logger)); err != nil {
		return nil, err
	}
	session, err := authenticator.Session(credentials, options.Auth.Store)
	if err != nil {
		return nil, err
	}
	if _, err = session.TokenContext(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// NewClient authenticates, creates an MCP client with the session bearer token and initializes it.
func NewClient(ctx context.Context, options *ClientOptions, clientOptions ...client.Option) (*client.Client, error) {
	session, err := NewSession(ctx, options)
	if err != nil {
		return nil, err
	}
	roundTripper, err := authtransport.New(session, authtransport.WithLogger(options.Logger))
	if err != nil {
		return nil, err
	}
	opts := []client.Option{
		client.WithHTTPClient(roundTripper.Client()),
		client.WithTimeout(time.Duration(options.TimeoutSec) * time.Second),
		client.WithHealthTimeout(time.Duration(options.HealthTimeoutSec) * time.Second),
		client.WithClientInfo(options.Name, options.Version),
		client.WithProtocolVersion(options.ProtocolVersion),
		client.WithLogger(options.Logger),
	}
	cli, err := client.New(options.Endpoint, nil, append(opts, clientOptions...)...)
	if err != nil {
		return nil, err
	}
	if _, err = cli.Initialize(ctx); err != nil {
		return nil, err
	}
	return cli, nil
}
