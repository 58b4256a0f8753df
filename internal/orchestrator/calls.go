package orchestrator

import (
	"context"
	"net/http"
	"net/url"

	"call-console/internal/calls"
)

func callPath(id string) string { return "/calls/" + url.PathEscape(id) }

func (c *Client) ListCalls(ctx context.Context) ([]calls.Call, error) {
	var out []calls.Call
	if err := c.do(ctx, http.MethodGet, "/calls", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCall(ctx context.Context, id string) (calls.Call, error) {
	var out calls.Call
	err := c.do(ctx, http.MethodGet, callPath(id), nil, &out)
	return out, err
}

func (c *Client) CreateCall(ctx context.Context, in calls.NewCall) (calls.Call, error) {
	var out calls.Call
	err := c.do(ctx, http.MethodPost, "/calls", in, &out)
	return out, err
}

func (c *Client) UpdateCall(ctx context.Context, id string, in calls.CallUpdate) (calls.Call, error) {
	var out calls.Call
	err := c.do(ctx, http.MethodPut, callPath(id), in, &out)
	return out, err
}

func (c *Client) DeleteCall(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, callPath(id), nil, nil)
}

// InitiateCall asks the orchestrator to dial an existing call record.
func (c *Client) InitiateCall(ctx context.Context, id string) (calls.ActionResult, error) {
	var out calls.ActionResult
	err := c.do(ctx, http.MethodPost, callPath(id)+"/initiate", nil, &out)
	return out, err
}

func (c *Client) HangupCall(ctx context.Context, id string) (calls.ActionResult, error) {
	var out calls.ActionResult
	err := c.do(ctx, http.MethodPost, callPath(id)+"/hangup", nil, &out)
	return out, err
}
