package clan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/edgard/clanwatch/internal/errors"
)

// maxErrorBody bounds how much of a failed response is read for the error message.
const maxErrorBody = 4 << 10

// Client fetches clan member lists from the game API.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
}

// membersResponse is the body of GET /clans/{tag}/members. Items is a pointer
// so that a body without the key can be told apart from an empty clan.
type membersResponse struct {
	Items *[]Member `json:"items"`
}

// apiError is the body the API sends with non-2xx responses.
type apiError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// NewClient creates a clan API client. A nil httpClient means http.DefaultClient.
func NewClient(baseURL, accessKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		accessKey:  accessKey,
		httpClient: httpClient,
	}
}

// MembersURL returns the member-list URL for tag. The tag is escaped as a path
// segment, so the leading '#' always becomes %23.
func (c *Client) MembersURL(tag string) string {
	return c.baseURL + "/clans/" + url.PathEscape(tag) + "/members"
}

// FetchMembers returns the members of the clan identified by tag, in API order.
// Transport failures, non-2xx statuses and undecodable bodies are FETCH errors.
func (c *Client) FetchMembers(ctx context.Context, tag string) ([]Member, error) {
	endpoint := c.MembersURL(tag)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewFetchError("failed to create members request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewFetchError("failed to send members request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewFetchError(
			fmt.Sprintf("members request for %s failed", tag), statusError(resp))
	}

	var body membersResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperrors.NewFetchError("failed to decode members response", err)
	}
	if body.Items == nil {
		return nil, apperrors.NewFetchError("members response has no items", nil)
	}

	return *body.Items, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body apiError
	if err := json.Unmarshal(raw, &body); err == nil && (body.Reason != "" || body.Message != "") {
		return fmt.Errorf("status %d: %s: %s", resp.StatusCode, body.Reason, body.Message)
	}

	return fmt.Errorf("status %d", resp.StatusCode)
}
