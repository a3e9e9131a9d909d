package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kameleon-labs/kameleon-cli/internal/core/validation"
)

// runWithInput executes args with stdin set to input and returns stdout and stderr.
func runWithInput(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestLoginCmd_Short(t *testing.T) {
	assert.Equal(t, "Sign in to Kameleon", loginCmd.Short)
}

func TestLoginCmd_HasNoPasswordFlag(t *testing.T) {
	assert.Nil(t, loginCmd.Flags().Lookup("password"))
	require.NotNil(t, loginCmd.Flags().Lookup("email"))
}

func TestLoginCmd_SignsIn(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "Secret1!\n", "login", "--email", "ada@example.com")

	require.NoError(t, err)
	require.NotNil(t, testServices.auth.login)
	assert.Equal(t, "ada@example.com", testServices.auth.login.Email)
	assert.Equal(t, "Secret1!", testServices.auth.login.Password)
	assert.Contains(t, out, "Signed in as ada@example.com")
}

func TestLoginCmd_PromptsForEmail(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "ada@example.com\nSecret1!\n", "login")

	require.NoError(t, err)
	assert.Contains(t, out, "Email: ")
	assert.Equal(t, "ada@example.com", testServices.auth.login.Email)
}

func TestLoginCmd_FieldErrors(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, errOut, err := runWithInput(t, "\n", "login", "--email", "not-an-email")

	require.Error(t, err)
	var fieldErrs validation.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.True(t, fieldErrs.Has(validation.FieldEmail))
	assert.True(t, fieldErrs.Has(validation.FieldPassword))
	assert.Contains(t, errOut, "email:")
}

func TestLoginCmd_BackendFailure(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	testServices.auth.failure = "Incorrect username or password."

	_, _, err := runWithInput(t, "Secret1!\n", "login", "--email", "ada@example.com")

	require.Error(t, err)
	assert.Equal(t, "Incorrect username or password.", err.Error())
}

func TestRegisterCmd_PointsToVerification(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "Abc12345!\nAbc12345!\n",
		"register", "--name", "Ada Lovelace", "--email", "ada@example.com")

	require.NoError(t, err)
	require.NotNil(t, testServices.auth.register)
	assert.Equal(t, "Ada Lovelace", testServices.auth.register.Name)
	assert.Equal(t, "Abc12345!", testServices.auth.register.ConfirmPassword)
	assert.Contains(t, out, "Next: kameleon verify-email --email ada@example.com")
}

func TestRegisterCmd_ListsUnmetRequirements(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, errOut, err := runWithInput(t, "abc\nabc\n",
		"register", "--name", "Ada", "--email", "ada@example.com")

	require.Error(t, err)
	assert.Contains(t, errOut, "Password requirements not met:")
	for _, r := range validation.CheckPassword("abc") {
		if !r.Satisfied {
			assert.Contains(t, errOut, r.Label)
		}
	}
}

func TestVerifyEmailCmd_SanitizesCode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "", "verify-email", "--email", "ada@example.com", "--code", "12-34-56")

	require.NoError(t, err)
	assert.Equal(t, "123456", testServices.auth.verify.Code)
	assert.Contains(t, out, "Next: kameleon login")
	assert.Contains(t, out, "Email verified")
}

func TestVerifyEmailCmd_ShortCode(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := runWithInput(t, "", "verify-email", "--email", "ada@example.com", "--code", "12a45z")

	require.Error(t, err)
	assert.Equal(t, "1245", testServices.auth.verify.Code)
}

func TestResendCodeCmd_Verification(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "", "resend-code", "--email", "ada@example.com")

	require.NoError(t, err)
	assert.False(t, testServices.auth.resendReset)
	assert.Contains(t, out, "Verification code sent! Check your email.")
}

func TestResendCodeCmd_Reset(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "", "resend-code", "--reset", "--email", "ada@example.com")

	require.NoError(t, err)
	assert.True(t, testServices.auth.resendReset)
	assert.Contains(t, out, "New code sent! Check your email.")
}

func TestResendCodeCmd_BlankEmail(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, _, err := runWithInput(t, "   \n", "resend-code")

	require.Error(t, err)
	assert.Equal(t, "Email is required to resend code", err.Error())
}

func TestForgotPasswordCmd_PointsToReset(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "", "forgot-password", "--email", "ada@example.com")

	require.NoError(t, err)
	assert.Contains(t, out, "Next: kameleon reset-password --email ada@example.com")
}

func TestResetPasswordCmd_MismatchedConfirmation(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, errOut, err := runWithInput(t, "Abc12345!\nAbc12345?\n",
		"reset-password", "--email", "ada@example.com", "--code", "123456")

	require.Error(t, err)
	assert.Contains(t, errOut, "confirmPassword:")
}

func TestResetPasswordCmd_Succeeds(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "Abc12345!\nAbc12345!\n",
		"reset-password", "--email", "ada@example.com", "--code", "123456")

	require.NoError(t, err)
	assert.Equal(t, "Abc12345!", testServices.auth.reset.NewPassword)
	assert.Contains(t, out, "Password reset.")
}

func TestLogoutCmd_SignsOut(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "", "logout")

	require.NoError(t, err)
	assert.True(t, testServices.session.signedOut)
	assert.Contains(t, out, "Signed out.")
}

func TestLogoutCmd_NotSignedIn(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	testServices.session.state.Authenticated = false

	out, _, err := runWithInput(t, "", "logout")

	require.NoError(t, err)
	assert.False(t, testServices.session.signedOut)
	assert.Contains(t, out, "Not signed in.")
}

func TestWhoamiCmd_ShowsProfile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "", "whoami")

	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "pro")
}

func TestWhoamiCmd_JSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, _, err := runWithInput(t, "", "whoami", "--output", "json")

	require.NoError(t, err)
	assert.Contains(t, out, `"email": "ada@example.com"`)
}

func TestAuthCommands_NotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	SetServices(nil)

	_, _, err := runWithInput(t, "", "login", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth flows not configured")
}
