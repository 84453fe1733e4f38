// Package client calls the broker HTTP API
package client

import (
	"github.com/chucky-1/fdbroker/internal/model"
	"github.com/chucky-1/fdbroker/internal/request"
	log "github.com/sirupsen/logrus"

	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// StatusError is returned for unexpected HTTP status codes
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

// Client is a broker API client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient is constructor
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Reset clears the linked account on the server
func (c *Client) Reset(ctx context.Context) error {
	_, err := c.post(ctx, "/reset", nil)
	return err
}

// LinkAccount links the financial institution account. A rejection carries the remote message.
func (c *Client) LinkAccount(ctx context.Context, username, password string) error {
	_, err := c.post(ctx, "/linkAccount", &request.LinkAccount{Username: username, Password: password})
	return err
}

// PlaceOrder places an order and returns its status
func (c *Client) PlaceOrder(ctx context.Context, r *request.PlaceOrder) (model.Status, error) {
	body, err := c.post(ctx, "/placeOrder", r)
	if err != nil {
		return "", err
	}
	var resp request.OrderResponse
	if err = json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	return model.Status(resp.Status), nil
}

// Stocks returns the catalog
func (c *Client) Stocks(ctx context.Context) ([]*model.Stock, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stocks", nil)
	if err != nil {
		return nil, err
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var stocks []*model.Stock
	if err = json.Unmarshal(body, &stocks); err != nil {
		return nil, err
	}
	return stocks, nil
}

func (c *Client) post(ctx context.Context, path string, v interface{}) ([]byte, error) {
	var payload io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		payload = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error(err)
		}
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
