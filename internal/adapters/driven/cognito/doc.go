// Package cognito implements the identity provider port on an AWS Cognito
// user pool using the public app-client flows. No AWS credentials are needed:
// every call is made anonymously with the app client id.
package cognito
