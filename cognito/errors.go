package cognito

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/upb/cognito-auth-gateway/identity"
)

// classifyError tags a Cognito SDK failure with the identity condition it
// represents. Anything not recognized is unclassified and keeps the SDK's
// description.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var (
		usernameExists *types.UsernameExistsException
		notAuthorized  *types.NotAuthorizedException
		notConfirmed   *types.UserNotConfirmedException
		codeMismatch   *types.CodeMismatchException
		expiredCode    *types.ExpiredCodeException
	)

	var tagged *identity.Error
	switch {
	case errors.As(err, &usernameExists):
		tagged = identity.NewError(identity.ConditionUsernameExists, usernameExists.ErrorMessage(), err)
	case errors.As(err, &notAuthorized):
		tagged = identity.NewError(identity.ConditionNotAuthorized, notAuthorized.ErrorMessage(), err)
	case errors.As(err, &notConfirmed):
		tagged = identity.NewError(identity.ConditionUserNotConfirmed, notConfirmed.ErrorMessage(), err)
	case errors.As(err, &codeMismatch):
		tagged = identity.NewError(identity.ConditionCodeMismatch, codeMismatch.ErrorMessage(), err)
	case errors.As(err, &expiredCode):
		tagged = identity.NewError(identity.ConditionExpiredCode, expiredCode.ErrorMessage(), err)
	default:
		tagged = identity.NewError(identity.ConditionUnclassified, describe(err), err)
	}

	tagged.Code = ErrorCode(err)
	return tagged
}

// describe renders an unclassified failure the way Cognito names it, e.g.
// "InvalidPasswordException: Password did not conform with policy".
func describe(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return fmt.Sprintf("%s: %s", apiErr.ErrorCode(), msg)
		}
		return apiErr.ErrorCode()
	}
	return err.Error()
}

// ErrorCode returns the Cognito error code behind err, if any
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
