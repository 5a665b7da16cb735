package cognito

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/upb/cognito-auth-gateway/identity"
)

// API is the subset of the Cognito Identity Provider client used here
type API interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	ConfirmSignUp(ctx context.Context, params *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
}

// Config holds the user pool app client settings
type Config struct {
	Region       string
	UserPoolID   string
	ClientID     string
	ClientSecret string
	Endpoint     string
}

// Client implements identity.Provider on top of a Cognito user pool app client
type Client struct {
	api API
	cfg Config
}

var _ identity.Provider = (*Client)(nil)

// NewClient creates a provider client around an existing Cognito API handle
func NewClient(api API, cfg Config) *Client {
	return &Client{
		api: api,
		cfg: cfg,
	}
}

// NewCognitoClient loads the default AWS configuration chain and builds a
// Cognito Identity Provider client for cfg.Region.
func NewCognitoClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, fmt.Errorf("cognito client ID is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := cip.NewFromConfig(awsCfg, func(o *cip.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewClient(api, cfg), nil
}

// SignUp registers email as both the username and the email attribute
func (c *Client) SignUp(ctx context.Context, email, password string) (*identity.SignUpResult, error) {
	out, err := c.api.SignUp(ctx, &cip.SignUpInput{
		ClientId:   aws.String(c.cfg.ClientID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		SecretHash: c.secretHash(email),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		return nil, classifyError(err)
	}

	return &identity.SignUpResult{
		UserSub:       aws.ToString(out.UserSub),
		UserConfirmed: out.UserConfirmed,
	}, nil
}

// Authenticate runs the USER_PASSWORD_AUTH flow
func (c *Client) Authenticate(ctx context.Context, email, password string) (*identity.AuthResult, error) {
	params := map[string]string{
		"USERNAME": email,
		"PASSWORD": password,
	}
	if hash := c.secretHash(email); hash != nil {
		params["SECRET_HASH"] = *hash
	}

	out, err := c.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(c.cfg.ClientID),
		AuthParameters: params,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	if out.AuthenticationResult == nil {
		// MFA and forced password changes answer with a challenge instead of tokens
		return nil, identity.NewError(identity.ConditionUnclassified,
			fmt.Sprintf("authentication challenge %q is not supported", string(out.ChallengeName)), nil)
	}

	res := out.AuthenticationResult
	result := &identity.AuthResult{
		AccessToken:  aws.ToString(res.AccessToken),
		IDToken:      aws.ToString(res.IdToken),
		RefreshToken: aws.ToString(res.RefreshToken),
		ExpiresIn:    res.ExpiresIn,
		TokenType:    aws.ToString(res.TokenType),
	}
	if sub, err := SubjectFromIDToken(result.IDToken); err == nil {
		result.Subject = sub
	}

	return result, nil
}

// ConfirmSignUp submits the confirmation code emailed at sign-up
func (c *Client) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := c.api.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.cfg.ClientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		SecretHash:       c.secretHash(email),
	})
	if err != nil {
		return classifyError(err)
	}
	return nil
}

func (c *Client) secretHash(username string) *string {
	if c.cfg.ClientSecret == "" {
		return nil
	}
	return aws.String(SecretHash(username, c.cfg.ClientID, c.cfg.ClientSecret))
}
