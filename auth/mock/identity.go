package mock

import (
	"context"
	"crypto/hmac"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/viant/mcpcognito/auth"
)

const tokenExpiry = time.Hour

// User represents user pool user
type User struct {
	Username  string
	Password  string
	Disabled  bool
	Challenge types.ChallengeNameType
}

// IdentityProvider simulates a Cognito user pool with one app client
type IdentityProvider struct {
	UserPoolID   string
	ClientID     string
	ClientSecret string
	Issuer       string
	SigningKey   []byte

	mux   sync.Mutex
	users map[string]*User
	calls int
}

// AdminInitiateAuth implements auth.InitiateAuthAPI
func (p *IdentityProvider) AdminInitiateAuth(ctx context.Context, input *cognitoidentityprovider.AdminInitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.AdminInitiateAuthOutput, error) {
	p.mux.Lock()
	p.calls++
	p.mux.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if aws.ToString(input.UserPoolId) != p.UserPoolID {
		return nil, apiError("ResourceNotFoundException", fmt.Sprintf("User pool %v does not exist.", aws.ToString(input.UserPoolId)))
	}
	if aws.ToString(input.ClientId) != p.ClientID {
		return nil, apiError("ResourceNotFoundException", fmt.Sprintf("User pool client %v does not exist.", aws.ToString(input.ClientId)))
	}
	if input.AuthFlow != types.AuthFlowTypeAdminNoSrpAuth {
		return nil, apiError("InvalidParameterException", fmt.Sprintf("Unsupported auth flow: %v", input.AuthFlow))
	}
	username := input.AuthParameters["USERNAME"]
	expected := auth.SecretHash(username, p.ClientID, p.ClientSecret)
	if !hmac.Equal([]byte(expected), []byte(input.AuthParameters["SECRET_HASH"])) {
		return nil, apiError("NotAuthorizedException", fmt.Sprintf("Unable to verify secret hash for client %v", p.ClientID))
	}
	user := p.lookup(username)
	if user == nil {
		return nil, apiError("UserNotFoundException", "User does not exist.")
	}
	if !hmac.Equal([]byte(user.Password), []byte(input.AuthParameters["PASSWORD"])) {
		return nil, apiError("NotAuthorizedException", "Incorrect username or password.")
	}
	if user.Disabled {
		return nil, apiError("NotAuthorizedException", "User is disabled.")
	}
	if user.Challenge != "" {
		return &cognitoidentityprovider.AdminInitiateAuthOutput{ChallengeName: user.Challenge, Session: aws.String("challenge-session")}, nil
	}
	accessToken, err := p.createJWT(username, "access", tokenExpiry)
	if err != nil {
		return nil, err
	}
	idToken, err := p.createJWT(username, "id", tokenExpiry)
	if err != nil {
		return nil, err
	}
	return &cognitoidentityprovider.AdminInitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken: aws.String(accessToken),
			IdToken:     aws.String(idToken),
			TokenType:   aws.String("Bearer"),
			ExpiresIn:   int32(tokenExpiry.Seconds()),
		},
	}, nil
}

// AddUser adds or replaces a user
func (p *IdentityProvider) AddUser(user *User) {
	p.mux.Lock()
	defer p.mux.Unlock()
	if p.users == nil {
		p.users = map[string]*User{}
	}
	p.users[user.Username] = user
}

// Calls returns number of AdminInitiateAuth calls
func (p *IdentityProvider) Calls() int {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.calls
}

func (p *IdentityProvider) lookup(username string) *User {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.users[username]
}

func apiError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message, Fault: smithy.FaultClient}
}

// New creates an identity provider
func New(userPoolID, clientID, clientSecret string, signingKey []byte, users ...*User) *IdentityProvider {
	ret := &IdentityProvider{
		UserPoolID:   userPoolID,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Issuer:       "https://cognito-idp.us-east-1.amazonaws.com/" + userPoolID,
		SigningKey:   signingKey,
	}
	for _, user := range users {
		ret.AddUser(user)
	}
	return ret
}

var _ auth.InitiateAuthAPI = (*IdentityProvider)(nil)
