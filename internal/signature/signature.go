// Package signature computes the HMAC-SHA1 request signature checked by the
// search service.
//
// The remote verifier recomputes the signature over the same canonical
// string, so key ordering, the escaped character set and the "&%2F&" marker
// must stay bit-exact.
package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"sort"
	"strings"

	"github.com/findyi/opensearch-go/internal/errors"
)

// Param is the name of the signature parameter. It is excluded from the
// canonical string and added back by the caller once Sign returns.
const Param = "Signature"

// Sign removes the Signature entry from params, canonicalizes the rest and
// returns the base64 HMAC-SHA1 of the base string keyed by secret+"&".
// params is consumed: re-add the Signature placeholder before reusing it.
func Sign(secret, httpMethod string, params map[string]string) (string, error) {
	canonical, err := CanonicalizeQueryString(params)
	if err != nil {
		return "", err
	}
	return HMACSHA1(secret+"&", PrepareBaseString(httpMethod, canonical)), nil
}

// CanonicalizeQueryString deletes the Signature entry, sorts the remaining
// keys bytewise and form-encodes them as k=v pairs joined by "&".
func CanonicalizeQueryString(params map[string]string) (string, error) {
	if params == nil {
		return "", errors.Argumentf("invalid querys parameter. it must be a non-nil map")
	}
	delete(params, Param)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(quotePlus(k))
		b.WriteByte('=')
		b.WriteString(quotePlus(params[k]))
	}
	return b.String(), nil
}

// PrepareBaseString renders METHOD&%2F&<quoted canonical string>. The
// canonical string is escaped a second time as one opaque value.
func PrepareBaseString(httpMethod, canonicalized string) string {
	return httpMethod + "&%2F&" + quote(canonicalized)
}

// HMACSHA1 returns the standard base64 encoding of HMAC-SHA1(key, raw).
func HMACSHA1(key, raw string) string {
	mac := hmac.New(sha1.New, []byte(key))
	_, _ = mac.Write([]byte(raw))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// quotePlus form-encodes s leaving only A-Za-z0-9 and "_.-" unescaped;
// space becomes "+". url.QueryEscape also keeps "~", which the verifier
// escapes.
func quotePlus(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "~", "%7E")
}

// quote percent-encodes s like quotePlus but keeps "/" literal and encodes
// space as %20.
func quote(s string) string {
	q := quotePlus(s)
	q = strings.ReplaceAll(q, "+", "%20")
	return strings.ReplaceAll(q, "%2F", "/")
}
