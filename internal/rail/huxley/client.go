// Package huxley talks to a Huxley-style proxy in front of the National
// Rail live departure boards.
package huxley

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/MikaLeppala/uk-rail-departures/internal/httpx"
	"github.com/MikaLeppala/uk-rail-departures/internal/rail"
)

// Client implements the rail.Source interface against a Huxley proxy.
type Client struct {
	name    string
	baseURL string
	httpCfg httpx.ClientConfig
	circuit *gobreaker.CircuitBreaker
}

func New(client *http.Client, baseURL string) *Client {
	return &Client{
		name:    "huxley",
		baseURL: baseURL,
		httpCfg: httpx.ClientConfig{
			Client: client,
			Backoff: httpx.BackoffConfig{
				MaxRetries:      3,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: httpx.NewBreaker("huxley"),
	}
}

func (c *Client) Name() string {
	return c.name
}

// Fetch retrieves the departure board for a station code. Unknown codes
// come back from the proxy with an empty service list, not an error.
func (c *Client) Fetch(ctx context.Context, code string, rows int) (rail.BoardData, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/departures/%s/%d", c.baseURL, url.PathEscape(code), rows)
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	resp, err := httpx.Do(ctx, c.httpCfg, c.circuit, buildRequest)
	if err != nil {
		return rail.BoardData{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		LocationName  string `json:"locationName"`
		TrainServices []struct {
			ServiceID   string `json:"serviceID"`
			Std         string `json:"std"`
			Etd         string `json:"etd"`
			Platform    string `json:"platform"`
			Operator    string `json:"operator"`
			Destination []struct {
				LocationName string `json:"locationName"`
			} `json:"destination"`
		} `json:"trainServices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return rail.BoardData{}, err
	}

	data := rail.BoardData{
		LocationName: payload.LocationName,
		Services:     make([]rail.Service, 0, len(payload.TrainServices)),
	}
	for _, ts := range payload.TrainServices {
		dests := make([]string, 0, len(ts.Destination))
		for _, d := range ts.Destination {
			dests = append(dests, d.LocationName)
		}
		data.Services = append(data.Services, rail.Service{
			ID:           ts.ServiceID,
			Scheduled:    ts.Std,
			Estimated:    ts.Etd,
			Platform:     ts.Platform,
			Destinations: dests,
			Operator:     ts.Operator,
		})
	}

	return data, nil
}
