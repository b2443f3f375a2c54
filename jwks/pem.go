package jwks

import (
	"encoding/base64"
	"encoding/pem"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// CertificatePEM extracts the first certificate of the key's x5c chain and
// returns its PEM encoding: the base64 DER wrapped in CERTIFICATE headers
// with lines folded at 64 characters. A key with an empty or undecodable
// chain fails with ErrMalformedKey.
func CertificatePEM(key jwk.Key) (string, error) {
	kid := key.KeyID()

	chain := key.X509CertChain()
	if chain == nil || chain.Len() == 0 {
		return "", &malformedKeyError{kid: kid}
	}

	// x5c entries are standard (not URL-safe) base64 DER per RFC 7517.
	b64, ok := chain.Get(0)
	if !ok {
		return "", &malformedKeyError{kid: kid}
	}
	der, err := base64.StdEncoding.DecodeString(string(b64))
	if err != nil {
		return "", &malformedKeyError{kid: kid, cause: err}
	}

	block := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	return string(block), nil
}
