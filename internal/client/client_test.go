package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chucky-1/fdbroker/internal/model"
	"github.com/chucky-1/fdbroker/internal/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PlaceOrder(t *testing.T) {
	testTable := []struct {
		name   string
		code   int
		status string
		expect model.Status
		failed bool
	}{
		{name: "OK success", code: http.StatusOK, status: "SUCCESS", expect: model.StatusSuccess},
		{name: "OK insufficient funds", code: http.StatusOK, status: "INSUFFICIENT_FUNDS", expect: model.StatusInsufficientFunds},
		{name: "Failed on unknown error", code: http.StatusInternalServerError, status: "UNKNOWN_ERROR", failed: true},
	}

	for _, testCase := range testTable {
		t.Run(testCase.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/placeOrder", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				var req request.PlaceOrder
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, request.PlaceOrder{Stock: "acme", Quantity: 2, Override: true}, req)
				w.WriteHeader(testCase.code)
				_ = json.NewEncoder(w).Encode(request.OrderResponse{Status: testCase.status})
			}))
			defer srv.Close()

			c := NewClient(srv.URL, srv.Client())
			status, err := c.PlaceOrder(context.Background(), &request.PlaceOrder{Stock: "acme", Quantity: 2, Override: true})
			if testCase.failed {
				var statusErr *StatusError
				require.True(t, errors.As(err, &statusErr))
				assert.Equal(t, testCase.code, statusErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, status)
		})
	}
}

func TestClient_LinkAccountRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/linkAccount", r.URL.Path)
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil).LinkAccount(context.Background(), "jdoe", "bad")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Equal(t, "Invalid username or password", statusErr.Body)
}

func TestClient_ResetAndStocks(t *testing.T) {
	resets := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reset":
			resets++
		case "/stocks":
			_, _ = io.WriteString(w, `[{"symbol":"acme","name":"Acme","price":"113.75"}]`)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", srv.Client())
	require.NoError(t, c.Reset(context.Background()))
	assert.Equal(t, 1, resets)

	stocks, err := c.Stocks(context.Background())
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "Acme", stocks[0].Name)
	assert.Equal(t, "113.75", stocks[0].Price.StringFixed(2))
}
