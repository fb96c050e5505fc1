// Package twilio covers the two Twilio touchpoints: sending SMS through the
// Messages API and validating inbound webhook signatures.
package twilio

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.twilio.com/2010-04-01"

type Client struct {
	accountSID string
	authToken  string
	from       string
	apiBase    string
	httpClient *http.Client
}

func NewClient(accountSID, authToken, from string) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		apiBase:    defaultAPIBase,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func NewClientWithBase(accountSID, authToken, from, apiBase string) *Client {
	c := NewClient(accountSID, authToken, from)
	c.apiBase = apiBase
	return c
}

func (c *Client) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.apiBase, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		payload, _ := io.ReadAll(res.Body)
		return fmt.Errorf("twilio: upstream error %d: %s", res.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}

// Signature computes the expected X-Twilio-Signature for a callback URL and
// its form parameters: HMAC-SHA1 over the URL followed by each key+value in
// key-sorted order, base64-encoded.
func Signature(authToken, callbackURL string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(callbackURL)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString(params[k])
	}

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// ValidateSignature accepts the signature if it matches any candidate URL.
// Multiple candidates tolerate reverse proxies rewriting host or protocol
// before the request reaches us.
func ValidateSignature(authToken, signature string, candidateURLs []string, params map[string]string) bool {
	if signature == "" {
		return false
	}
	for _, u := range candidateURLs {
		expected := Signature(authToken, u, params)
		if hmac.Equal([]byte(expected), []byte(signature)) {
			return true
		}
	}
	return false
}
