package auth0strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hookauth/go-auth0-strategy/service"
)

func newExtractorStrategy(t *testing.T) *Strategy {
	t.Helper()
	s, err := New(Config{Domain: testDomain, Service: "users"})
	require.NoError(t, err)
	require.NoError(t, s.config.validate())
	return s
}

func Test_ParseCredentials_FromHeader(t *testing.T) {
	s := newExtractorStrategy(t)

	testCases := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{
			name:      "bearer scheme",
			header:    "Bearer the-token",
			wantToken: "the-token",
		},
		{
			name:      "jwt scheme",
			header:    "JWT the-token",
			wantToken: "the-token",
		},
		{
			name:      "scheme matching is case insensitive",
			header:    "bearer the-token",
			wantToken: "the-token",
		},
		{
			name:      "bare token without a scheme",
			header:    "the-token",
			wantToken: "the-token",
		},
		{
			name:    "unsupported scheme",
			header:  "Basic dXNlcjpwYXNz",
			wantErr: ErrMalformedToken,
		},
		{
			name:    "too many parts",
			header:  "Bearer one two",
			wantErr: ErrMalformedToken,
		},
		{
			name:    "missing header",
			header:  "",
			wantErr: ErrNotAuthenticated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			params := service.Params{}
			if tc.header != "" {
				params.Headers = map[string]string{"Authorization": tc.header}
			}

			creds, err := s.ParseCredentials(params)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, ErrNotAuthenticated)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantToken, creds.AccessToken)
			assert.Equal(t, "auth0", creds.Strategy)
		})
	}
}

func Test_ParseCredentials_FromTransport(t *testing.T) {
	s := newExtractorStrategy(t)

	t.Run("uses transport-parsed credentials first", func(t *testing.T) {
		creds, err := s.ParseCredentials(service.Params{
			Credentials: map[string]any{"strategy": "auth0", "accessToken": "the-token"},
			Headers:     map[string]string{"Authorization": "Bearer header-token"},
		})
		require.NoError(t, err)
		assert.Equal(t, "the-token", creds.AccessToken)
	})

	t.Run("defaults the strategy name", func(t *testing.T) {
		creds, err := s.ParseCredentials(service.Params{
			Credentials: map[string]any{"accessToken": "the-token"},
		})
		require.NoError(t, err)
		assert.Equal(t, "auth0", creds.Strategy)
	})

	t.Run("rejects credentials without a token", func(t *testing.T) {
		_, err := s.ParseCredentials(service.Params{
			Credentials: map[string]any{"strategy": "auth0"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Contains(t, err.Error(), "no access token")
	})
}

func Test_ParseCredentials_CustomHeader(t *testing.T) {
	s, err := New(Config{
		Domain:  testDomain,
		Service: "users",
		Header:  "X-Access-Token",
		Schemes: []string{"Token"},
	})
	require.NoError(t, err)
	require.NoError(t, s.config.validate())

	creds, err := s.ParseCredentials(service.Params{
		Headers: map[string]string{"X-Access-Token": "Token the-token"},
	})
	require.NoError(t, err)
	assert.Equal(t, "the-token", creds.AccessToken)

	_, err = s.ParseCredentials(service.Params{
		Headers: map[string]string{"X-Access-Token": "Bearer the-token"},
	})
	assert.ErrorIs(t, err, ErrMalformedToken)
}
