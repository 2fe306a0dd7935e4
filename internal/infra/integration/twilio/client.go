package twilio

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	http       *http.Client
}

func NewClient(accountSID, authToken, from string) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    "https://api.twilio.com/2010-04-01",
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Send submits one SMS and returns the provider message SID and status.
// One network call, one attempt; provider errors surface verbatim.
func (c *Client) Send(to, body string) (string, string, error) {
	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.baseURL, c.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.from)
	form.Set("Body", body)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	result, err := parseMessageResponse(respBody)
	if err != nil {
		return "", "", fmt.Errorf("twilio returned unreadable response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 {
		if result.Message != "" {
			return "", "", fmt.Errorf("twilio error %d: %s", result.Code, result.Message)
		}
		return "", "", fmt.Errorf("twilio api error: status %d", resp.StatusCode)
	}

	return result.SID, result.Status, nil
}
