// Package gateway talks to the remote banking API
package gateway

import (
	"github.com/chucky-1/fdbroker/internal/accounts"
	"github.com/chucky-1/fdbroker/internal/config"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"context"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	tokenPath    = "/v1/oauth/token"
	accountsPath = "/bankingservices/v2/fis/%s/fiCustomers/%s/accounts"
)

// ErrGatewayUnreachable is returned on transport failures
var ErrGatewayUnreachable = errors.New("banking gateway unreachable")

// RemoteAuthRejectedError carries the status message of a rejected authentication
type RemoteAuthRejectedError struct {
	Message string
}

func (e *RemoteAuthRejectedError) Error() string {
	return e.Message
}

// Gateway performs the calls of the remote banking API
type Gateway struct {
	httpClient     *http.Client
	baseURL        string
	consumerKey    string
	consumerSecret string
	fiid           string
	customerID     string
	userAgent      string
	trackingID     string
}

// NewGateway is constructor. The tracking identifier is generated once per gateway.
func NewGateway(cfg *config.Config, httpClient *http.Client) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	return &Gateway{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(cfg.APIBaseURL, "/"),
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		fiid:           cfg.FIID,
		customerID:     cfg.CustomerID,
		userAgent:      cfg.UserAgent,
		trackingID:     uuid.NewString(),
	}
}

// TrackingID returns the identifier sent as di_tid
func (g *Gateway) TrackingID() string {
	return g.trackingID
}

// tokenResponse covers both the token document and the Status error document
type tokenResponse struct {
	XMLName       xml.Name
	AccessToken   string     `xml:"access_token"`
	ErrorInfo     *errorInfo `xml:"errorInfo"`
	StatusMessage string     `xml:"statusMessage"`
}

type errorInfo struct {
	Inner string `xml:",innerxml"`
}

// Authenticate exchanges the user's credentials for an access token
func (g *Gateway) Authenticate(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	key := base64.StdEncoding.EncodeToString([]byte(g.consumerKey + ":" + g.consumerSecret))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", g.userAgent)
	// sent verbatim, not canonicalized
	req.Header["di_fiid"] = []string{g.fiid}
	req.Header["di_tid"] = []string{g.trackingID}
	req.Header.Set("Authorization", "Basic "+key)

	body, err := g.do(req)
	if err != nil {
		return "", err
	}

	var resp tokenResponse
	if err = xml.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", accounts.ErrMalformedResponse, err)
	}
	if resp.XMLName.Local == "Status" && resp.ErrorInfo != nil {
		return "", &RemoteAuthRejectedError{Message: strings.TrimSpace(resp.StatusMessage)}
	}
	token := strings.TrimSpace(resp.AccessToken)
	if resp.XMLName.Local != "token" || token == "" {
		return "", fmt.Errorf("%w: no access token in <%s>", accounts.ErrMalformedResponse, resp.XMLName.Local)
	}
	return token, nil
}

// FetchAccounts returns the raw accounts document of the customer
func (g *Gateway) FetchAccounts(ctx context.Context, token string) ([]byte, error) {
	u := g.baseURL + fmt.Sprintf(accountsPath, url.PathEscape(g.fiid), url.PathEscape(g.customerID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header["di_tid"] = []string{g.trackingID}
	req.Header.Set("Authorization", "Bearer "+token)

	return g.do(req)
}

func (g *Gateway) do(req *http.Request) ([]byte, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error(err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnreachable, err)
	}
	log.WithFields(log.Fields{
		"method": req.Method,
		"path":   req.URL.Path,
		"status": resp.StatusCode,
		"di_tid": g.trackingID,
	}).Debug("banking api call")
	return body, nil
}
