package cognito

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
	"github.com/kameleon-labs/kameleon-cli/internal/core/ports/driven"
	"github.com/kameleon-labs/kameleon-cli/internal/logger"
)

// Ensure Provider implements the interface.
var _ driven.IdentityProvider = (*Provider)(nil)

// Auth parameter names understood by InitiateAuth.
const (
	paramUsername     = "USERNAME"
	paramPassword     = "PASSWORD"
	paramRefreshToken = "REFRESH_TOKEN"
)

// Config holds the user pool settings.
type Config struct {
	// Region is the pool's AWS region (required).
	Region string

	// ClientID is the public app client id (required).
	ClientID string

	// Endpoint overrides the regional endpoint, e.g. for a local emulator.
	Endpoint string
}

// API is the subset of the Cognito client used by Provider.
type API interface {
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	SignUp(ctx context.Context, in *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, in *cip.ConfirmSignUpInput, optFns ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error)
	ResendConfirmationCode(
		ctx context.Context, in *cip.ResendConfirmationCodeInput, optFns ...func(*cip.Options),
	) (*cip.ResendConfirmationCodeOutput, error)
	ForgotPassword(ctx context.Context, in *cip.ForgotPasswordInput, optFns ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error)
	ConfirmForgotPassword(
		ctx context.Context, in *cip.ConfirmForgotPasswordInput, optFns ...func(*cip.Options),
	) (*cip.ConfirmForgotPasswordOutput, error)
	GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
}

// Provider talks to a Cognito user pool.
type Provider struct {
	api      API
	clientID string
	now      func() time.Time
}

// New creates a provider backed by the AWS SDK.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	if strings.TrimSpace(cfg.ClientID) == "" {
		return nil, fmt.Errorf("%w: cognito client id", domain.ErrNotConfigured)
	}
	if strings.TrimSpace(cfg.Region) == "" {
		return nil, fmt.Errorf("%w: cognito region", domain.ErrNotConfigured)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := cip.NewFromConfig(awsCfg, func(o *cip.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithAPI(client, cfg.ClientID), nil
}

// NewWithAPI creates a provider over an existing client.
func NewWithAPI(api API, clientID string) *Provider {
	return &Provider{api: api, clientID: clientID, now: time.Now}
}

// SignIn authenticates with USER_PASSWORD_AUTH.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*domain.Tokens, error) {
	out, err := p.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			paramUsername: email,
			paramPassword: password,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}
	return p.tokens(out)
}

// SignUp registers email as the username with the name attribute.
func (p *Provider) SignUp(ctx context.Context, email, password, name string) (bool, error) {
	attrs := []types.AttributeType{{Name: aws.String("email"), Value: aws.String(email)}}
	if name != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("name"), Value: aws.String(name)})
	}

	out, err := p.api.SignUp(ctx, &cip.SignUpInput{
		ClientId:       aws.String(p.clientID),
		Username:       aws.String(email),
		Password:       aws.String(password),
		UserAttributes: attrs,
	})
	if err != nil {
		return false, mapError(err)
	}
	return !out.UserConfirmed, nil
}

// ConfirmSignUp confirms an account with its emailed code.
func (p *Provider) ConfirmSignUp(ctx context.Context, email, code string) error {
	_, err := p.api.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	return mapError(err)
}

// ResendConfirmationCode emails a new sign-up code.
func (p *Provider) ResendConfirmationCode(ctx context.Context, email string) error {
	_, err := p.api.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
	})
	return mapError(err)
}

// ForgotPassword emails a reset code.
func (p *Provider) ForgotPassword(ctx context.Context, email string) error {
	_, err := p.api.ForgotPassword(ctx, &cip.ForgotPasswordInput{
		ClientId: aws.String(p.clientID),
		Username: aws.String(email),
	})
	return mapError(err)
}

// ConfirmForgotPassword sets a new password with the reset code.
func (p *Provider) ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error {
	_, err := p.api.ConfirmForgotPassword(ctx, &cip.ConfirmForgotPasswordInput{
		ClientId:         aws.String(p.clientID),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(newPassword),
	})
	return mapError(err)
}

// Refresh runs REFRESH_TOKEN_AUTH. Cognito does not rotate the refresh
// token here, so the result carries none.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*domain.Tokens, error) {
	if refreshToken == "" {
		return nil, domain.ErrTokenRefreshFailed
	}
	out, err := p.api.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		ClientId:       aws.String(p.clientID),
		AuthParameters: map[string]string{paramRefreshToken: refreshToken},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenRefreshFailed, mapError(err))
	}
	return p.tokens(out)
}

// SignOut revokes all of the user's tokens.
func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	_, err := p.api.GlobalSignOut(ctx, &cip.GlobalSignOutInput{AccessToken: aws.String(accessToken)})
	return mapError(err)
}

func (p *Provider) tokens(out *cip.InitiateAuthOutput) (*domain.Tokens, error) {
	if out.ChallengeName != "" {
		return nil, &domain.AuthError{
			Code:    string(out.ChallengeName),
			Message: fmt.Sprintf("Sign-in requires an additional step (%s) that is not supported here", out.ChallengeName),
		}
	}
	res := out.AuthenticationResult
	if res == nil || aws.ToString(res.IdToken) == "" {
		return nil, errors.New("cognito: no tokens in response")
	}

	tokens := &domain.Tokens{
		IDToken:      aws.ToString(res.IdToken),
		AccessToken:  aws.ToString(res.AccessToken),
		RefreshToken: aws.ToString(res.RefreshToken),
	}
	if res.ExpiresIn > 0 {
		tokens.Expiry = p.now().Add(time.Duration(res.ExpiresIn) * time.Second)
	}
	return tokens, nil
}

// mapError turns service exceptions into domain.AuthError so their message
// reaches the user. Transport and SDK failures pass through unchanged.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	logger.Debug("cognito: %s", apiErr.ErrorCode())

	msg := apiErr.ErrorMessage()
	if msg == "" {
		msg = defaultMessages[apiErr.ErrorCode()]
	}
	return &domain.AuthError{Code: apiErr.ErrorCode(), Message: msg}
}

// defaultMessages covers exceptions that arrive without a message.
var defaultMessages = map[string]string{
	"NotAuthorizedException":         "Incorrect username or password.",
	"UserNotFoundException":          "User does not exist.",
	"UserNotConfirmedException":      "User is not confirmed.",
	"UsernameExistsException":        "An account with the given email already exists.",
	"CodeMismatchException":          "Invalid verification code provided, please try again.",
	"ExpiredCodeException":           "Invalid code provided, please request a code again.",
	"LimitExceededException":         "Attempt limit exceeded, please try after some time.",
	"InvalidPasswordException":       "Password does not conform to policy.",
	"TooManyRequestsException":       "Too many requests, please try again later.",
	"InvalidParameterException":      "Invalid parameters.",
	"PasswordResetRequiredException": "Password reset required for the user.",
}
