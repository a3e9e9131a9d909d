package cognito

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kameleon-labs/kameleon-cli/internal/core/domain"
)

// fakeAPI records inputs and returns canned outputs.
type fakeAPI struct {
	initiateIn  *cip.InitiateAuthInput
	initiateOut *cip.InitiateAuthOutput
	signUpIn    *cip.SignUpInput
	signUpOut   *cip.SignUpOutput
	confirmIn   *cip.ConfirmSignUpInput
	resetIn     *cip.ConfirmForgotPasswordInput
	signOutIn   *cip.GlobalSignOutInput
	calls       []string
	err         error
}

func (f *fakeAPI) InitiateAuth(_ context.Context, in *cip.InitiateAuthInput, _ ...func(*cip.Options)) (*cip.InitiateAuthOutput, error) {
	f.calls = append(f.calls, "InitiateAuth")
	f.initiateIn = in
	return f.initiateOut, f.err
}

func (f *fakeAPI) SignUp(_ context.Context, in *cip.SignUpInput, _ ...func(*cip.Options)) (*cip.SignUpOutput, error) {
	f.calls = append(f.calls, "SignUp")
	f.signUpIn = in
	return f.signUpOut, f.err
}

func (f *fakeAPI) ConfirmSignUp(_ context.Context, in *cip.ConfirmSignUpInput, _ ...func(*cip.Options)) (*cip.ConfirmSignUpOutput, error) {
	f.calls = append(f.calls, "ConfirmSignUp")
	f.confirmIn = in
	return &cip.ConfirmSignUpOutput{}, f.err
}

func (f *fakeAPI) ResendConfirmationCode(
	_ context.Context, _ *cip.ResendConfirmationCodeInput, _ ...func(*cip.Options),
) (*cip.ResendConfirmationCodeOutput, error) {
	f.calls = append(f.calls, "ResendConfirmationCode")
	return &cip.ResendConfirmationCodeOutput{}, f.err
}

func (f *fakeAPI) ForgotPassword(_ context.Context, _ *cip.ForgotPasswordInput, _ ...func(*cip.Options)) (*cip.ForgotPasswordOutput, error) {
	f.calls = append(f.calls, "ForgotPassword")
	return &cip.ForgotPasswordOutput{}, f.err
}

func (f *fakeAPI) ConfirmForgotPassword(
	_ context.Context, in *cip.ConfirmForgotPasswordInput, _ ...func(*cip.Options),
) (*cip.ConfirmForgotPasswordOutput, error) {
	f.calls = append(f.calls, "ConfirmForgotPassword")
	f.resetIn = in
	return &cip.ConfirmForgotPasswordOutput{}, f.err
}

func (f *fakeAPI) GlobalSignOut(_ context.Context, in *cip.GlobalSignOutInput, _ ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error) {
	f.calls = append(f.calls, "GlobalSignOut")
	f.signOutIn = in
	return &cip.GlobalSignOutOutput{}, f.err
}

func newFakeProvider(api *fakeAPI) *Provider {
	p := NewWithAPI(api, "client-123")
	p.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }
	return p
}

func TestNew_RequiresSettings(t *testing.T) {
	_, err := New(context.Background(), Config{Region: "us-east-1"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	_, err = New(context.Background(), Config{ClientID: "abc"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestProvider_SignIn(t *testing.T) {
	api := &fakeAPI{initiateOut: &cip.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			IdToken:      aws.String("id"),
			AccessToken:  aws.String("access"),
			RefreshToken: aws.String("refresh"),
			ExpiresIn:    3600,
		},
	}}
	p := newFakeProvider(api)

	tokens, err := p.SignIn(context.Background(), "ada@example.com", "Abc12345!")
	require.NoError(t, err)

	assert.Equal(t, types.AuthFlowTypeUserPasswordAuth, api.initiateIn.AuthFlow)
	assert.Equal(t, "client-123", aws.ToString(api.initiateIn.ClientId))
	assert.Equal(t, "ada@example.com", api.initiateIn.AuthParameters["USERNAME"])
	assert.Equal(t, "Abc12345!", api.initiateIn.AuthParameters["PASSWORD"])

	assert.Equal(t, "id", tokens.IDToken)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "refresh", tokens.RefreshToken)
	assert.Equal(t, time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC), tokens.Expiry)
}

func TestProvider_SignIn_Challenge(t *testing.T) {
	api := &fakeAPI{initiateOut: &cip.InitiateAuthOutput{ChallengeName: types.ChallengeNameTypeNewPasswordRequired}}

	_, err := newFakeProvider(api).SignIn(context.Background(), "ada@example.com", "pw")
	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "NEW_PASSWORD_REQUIRED", authErr.Code)
}

func TestProvider_SignIn_MapsServiceErrors(t *testing.T) {
	api := &fakeAPI{err: &types.NotAuthorizedException{Message: aws.String("Incorrect username or password.")}}

	_, err := newFakeProvider(api).SignIn(context.Background(), "ada@example.com", "wrong")
	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "NotAuthorizedException", authErr.Code)
	assert.Equal(t, "Incorrect username or password.", authErr.Message)
}

func TestProvider_MapError_DefaultMessage(t *testing.T) {
	err := mapError(&types.CodeMismatchException{})
	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "Invalid verification code provided, please try again.", authErr.Message)
}

func TestProvider_MapError_PassesThroughTransportErrors(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")
	assert.Same(t, netErr, mapError(netErr))
	assert.NoError(t, mapError(nil))
}

func TestProvider_SignUp(t *testing.T) {
	tests := []struct {
		name      string
		confirmed bool
		want      bool
	}{
		{"needs confirmation", false, true},
		{"auto confirmed", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{signUpOut: &cip.SignUpOutput{UserConfirmed: tt.confirmed}}
			needs, err := newFakeProvider(api).SignUp(context.Background(), "ada@example.com", "Abc12345!", "Ada")
			require.NoError(t, err)
			assert.Equal(t, tt.want, needs)

			assert.Equal(t, "ada@example.com", aws.ToString(api.signUpIn.Username))
			require.Len(t, api.signUpIn.UserAttributes, 2)
			assert.Equal(t, "name", aws.ToString(api.signUpIn.UserAttributes[1].Name))
			assert.Equal(t, "Ada", aws.ToString(api.signUpIn.UserAttributes[1].Value))
		})
	}
}

func TestProvider_CodeFlows(t *testing.T) {
	api := &fakeAPI{}
	p := newFakeProvider(api)
	ctx := context.Background()

	require.NoError(t, p.ConfirmSignUp(ctx, "ada@example.com", "123456"))
	assert.Equal(t, "123456", aws.ToString(api.confirmIn.ConfirmationCode))

	require.NoError(t, p.ResendConfirmationCode(ctx, "ada@example.com"))
	require.NoError(t, p.ForgotPassword(ctx, "ada@example.com"))

	require.NoError(t, p.ConfirmForgotPassword(ctx, "ada@example.com", "654321", "Newpass1!"))
	assert.Equal(t, "654321", aws.ToString(api.resetIn.ConfirmationCode))
	assert.Equal(t, "Newpass1!", aws.ToString(api.resetIn.Password))

	assert.Equal(t, []string{"ConfirmSignUp", "ResendConfirmationCode", "ForgotPassword", "ConfirmForgotPassword"}, api.calls)
}

func TestProvider_Refresh(t *testing.T) {
	api := &fakeAPI{initiateOut: &cip.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{IdToken: aws.String("id2"), ExpiresIn: 60},
	}}
	p := newFakeProvider(api)

	tokens, err := p.Refresh(context.Background(), "refresh")
	require.NoError(t, err)
	assert.Equal(t, types.AuthFlowTypeRefreshTokenAuth, api.initiateIn.AuthFlow)
	assert.Equal(t, "refresh", api.initiateIn.AuthParameters["REFRESH_TOKEN"])
	assert.Equal(t, "id2", tokens.IDToken)
	assert.Empty(t, tokens.RefreshToken)
}

func TestProvider_Refresh_Failure(t *testing.T) {
	p := newFakeProvider(&fakeAPI{err: &types.NotAuthorizedException{Message: aws.String("Refresh Token has expired")}})

	_, err := p.Refresh(context.Background(), "stale")
	assert.ErrorIs(t, err, domain.ErrTokenRefreshFailed)

	_, err = p.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrTokenRefreshFailed)
}

func TestProvider_SignOut(t *testing.T) {
	api := &fakeAPI{}
	p := newFakeProvider(api)

	require.NoError(t, p.SignOut(context.Background(), ""))
	assert.Empty(t, api.calls)

	require.NoError(t, p.SignOut(context.Background(), "access"))
	assert.Equal(t, "access", aws.ToString(api.signOutIn.AccessToken))
}

func TestProvider_OverTheWire(t *testing.T) {
	var targets []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := r.Header.Get("X-Amz-Target")
		targets = append(targets, target)
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/x-amz-json-1.1")

		switch target {
		case "AWSCognitoIdentityProviderService.SignUp":
			_ = json.NewEncoder(w).Encode(map[string]any{"UserConfirmed": false, "UserSub": "sub-1"})
		default:
			w.Header().Set("X-Amzn-ErrorType", "NotAuthorizedException")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"__type":  "NotAuthorizedException",
				"message": "Incorrect username or password.",
			})
		}
	}))
	defer srv.Close()

	p, err := New(context.Background(), Config{Region: "us-east-1", ClientID: "client-123", Endpoint: srv.URL})
	require.NoError(t, err)

	needs, err := p.SignUp(context.Background(), "ada@example.com", "Abc12345!", "Ada")
	require.NoError(t, err)
	assert.True(t, needs)

	_, err = p.SignIn(context.Background(), "ada@example.com", "wrong")
	var authErr *domain.AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "Incorrect username or password.", authErr.Message)

	assert.Equal(t, "AWSCognitoIdentityProviderService.InitiateAuth", targets[len(targets)-1])
}
