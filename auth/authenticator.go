package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"golang.org/x/oauth2"
)

const (
	paramUsername   = "USERNAME"
	paramPassword   = "PASSWORD"
	paramSecretHash = "SECRET_HASH"

	tokenTypeBearer = "Bearer"
)

// InitiateAuthAPI represents the identity provider operation used to authenticate
type InitiateAuthAPI interface {
	AdminInitiateAuth(ctx context.Context, params *cognitoidentityprovider.AdminInitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminInitiateAuthOutput, error)
}

// Authenticator exchanges credentials for an access token
type Authenticator struct {
	api    InitiateAuthAPI
	logger *slog.Logger
}

// Authenticate performs a single ADMIN_NO_SRP_AUTH exchange, the returned token carries no expiry
func (a *Authenticator) Authenticate(ctx context.Context, credentials *Credentials) (*oauth2.Token, error) {
	if credentials == nil {
		return nil, &AuthError{Code: codeMissingCredential, Message: "credentials were nil", Err: ErrMissingCredential}
	}
	if err := credentials.Validate(); err != nil {
		return nil, err
	}
	input := &cognitoidentityprovider.AdminInitiateAuthInput{
		UserPoolId: aws.String(credentials.UserPoolID),
		ClientId:   aws.String(credentials.ClientID),
		AuthFlow:   types.AuthFlowTypeAdminNoSrpAuth,
		AuthParameters: map[string]string{
			paramUsername:   credentials.Username,
			paramPassword:   credentials.Password,
			paramSecretHash: SecretHash(credentials.Username, credentials.ClientID, credentials.ClientSecret),
		},
	}
	output, err := a.api.AdminInitiateAuth(ctx, input)
	if err != nil {
		a.logger.Debug("authentication rejected", "userPoolId", credentials.UserPoolID, "clientId", credentials.ClientID, "username", credentials.Username)
		return nil, providerError(err)
	}
	result := output.AuthenticationResult
	if result == nil || aws.ToString(result.AccessToken) == "" {
		if output.ChallengeName != "" {
			return nil, &AuthError{Code: codeChallenge, Message: fmt.Sprintf("unsupported challenge: %v", output.ChallengeName)}
		}
		return nil, &AuthError{Code: codeNoToken, Message: "authentication result has no access token"}
	}
	token := &oauth2.Token{AccessToken: aws.ToString(result.AccessToken), TokenType: tokenTypeBearer}
	extra := map[string]interface{}{}
	if idToken := aws.ToString(result.IdToken); idToken != "" {
		extra["id_token"] = idToken
	}
	if refreshToken := aws.ToString(result.RefreshToken); refreshToken != "" {
		token.RefreshToken = refreshToken
	}
	if len(extra) > 0 {
		token = token.WithExtra(extra)
	}
	a.logger.Debug("authenticated", "userPoolId", credentials.UserPoolID, "clientId", credentials.ClientID, "username", credentials.Username)
	return token, nil
}

func providerError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &AuthError{Code: apiErr.ErrorCode(), Message: apiErr.ErrorMessage(), Err: err}
	}
	return &AuthError{Message: err.Error(), Err: err}
}

// New creates an authenticator
func New(api InitiateAuthAPI, options ...Option) *Authenticator {
	ret := &Authenticator{api: api, logger: slog.Default()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// NewFromConfig creates an authenticator with a Cognito identity provider client
func NewFromConfig(cfg aws.Config, options ...Option) *Authenticator {
	return New(cognitoidentityprovider.NewFromConfig(cfg), options...)
}

// Load creates an authenticator using the default AWS configuration chain, empty region keeps the chain's region
func Load(ctx context.Context, region string, options ...Option) (*Authenticator, error) {
	var loadOptions []func(*config.LoadOptions) error
	if region != "" {
		loadOptions = append(loadOptions, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewFromConfig(cfg, options...), nil
}
