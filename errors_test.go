package auth0strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hookauth/go-auth0-strategy/jwks"
	"github.com/hookauth/go-auth0-strategy/service"
)

func Test_ErrorCode(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want Code
	}{
		{
			name: "malformed token",
			err:  notAuthenticated(&malformedTokenError{cause: errNoAccessToken}),
			want: CodeMalformedToken,
		},
		{
			name: "verification",
			err:  notAuthenticated(&verificationError{cause: errors.New("bad signature")}),
			want: CodeVerification,
		},
		{
			name: "key retrieval wins over verification",
			err:  notAuthenticated(&verificationError{cause: jwks.ErrKeyRetrieval}),
			want: CodeKeyRetrieval,
		},
		{
			name: "key not found wins over verification",
			err:  notAuthenticated(&verificationError{cause: jwks.ErrKeyNotFound}),
			want: CodeKeyNotFound,
		},
		{
			name: "malformed key wins over verification",
			err:  notAuthenticated(&verificationError{cause: jwks.ErrMalformedKey}),
			want: CodeMalformedKey,
		},
		{
			name: "entity not found",
			err:  notAuthenticated(&entityNotFoundError{entity: "user", subject: "auth0|1"}),
			want: CodeEntityNotFound,
		},
		{
			name: "service not found",
			err:  notAuthenticated(service.ErrServiceNotFound),
			want: CodeServiceNotFound,
		},
		{
			name: "configuration",
			err:  &configurationError{option: "domain", reason: "is required"},
			want: CodeConfiguration,
		},
		{
			name: "hook usage",
			err:  &hookUsageError{reason: "wrong phase"},
			want: CodeHookUsage,
		},
		{
			name: "bare credential failure",
			err:  notAuthenticated(errors.New("strategy not allowed")),
			want: CodeCredentials,
		},
		{
			name: "missing credential",
			err:  notAuthenticated(errNoAccessToken),
			want: CodeCredentials,
		},
		{
			name: "unrelated error",
			err:  errors.New("disk full"),
			want: CodeUnknown,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorCode(tc.err))
		})
	}
}

func Test_NotAuthenticatedError(t *testing.T) {
	cause := &malformedTokenError{cause: errNoAccessToken}
	err := notAuthenticated(cause)

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, err, ErrMalformedToken)
	assert.Equal(t, CodeMalformedToken, err.Code, "the code is fixed at wrap time")
	assert.Equal(t, "not authenticated: malformed access token: no access token", err.Error())

	var target *NotAuthenticatedError
	assert.ErrorAs(t, error(err), &target)
}

func Test_NotAuthenticatedError_CodeMatchesClassifier(t *testing.T) {
	// The struct's Code and ErrorCode on the wrapped error are the same
	// discriminant; the two must never disagree.
	causes := []error{
		errNoAccessToken,
		errors.New("strategy not allowed"),
		&malformedTokenError{cause: errNoAccessToken},
		&verificationError{cause: errors.New("bad signature")},
		&entityNotFoundError{entity: "user", subject: "auth0|1"},
		service.ErrServiceNotFound,
	}

	for _, cause := range causes {
		err := notAuthenticated(cause)
		assert.Equal(t, err.Code, ErrorCode(err), "cause: %v", cause)
	}
}

func Test_CategoryErrors(t *testing.T) {
	t.Run("configuration errors are not credential failures", func(t *testing.T) {
		err := &configurationError{option: "domain", reason: "is required"}
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.NotErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("hook usage errors are not credential failures", func(t *testing.T) {
		err := &hookUsageError{reason: "wrong phase"}
		assert.ErrorIs(t, err, ErrHookUsage)
		assert.NotErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("verification keeps its cause reachable", func(t *testing.T) {
		cause := errors.New("signature mismatch")
		err := &verificationError{cause: cause}
		assert.ErrorIs(t, err, ErrVerification)
		assert.ErrorIs(t, err, cause)
	})
}
