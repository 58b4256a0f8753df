package orchestrator

import (
	"context"
	"net/http"
	"net/url"

	"call-console/internal/calls"
	"call-console/internal/contacts"
)

func callListPath(id string) string { return "/call-lists/" + url.PathEscape(id) }

func (c *Client) ListCallLists(ctx context.Context) ([]calls.CallList, error) {
	var out []calls.CallList
	if err := c.do(ctx, http.MethodGet, "/call-lists", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCallList(ctx context.Context, id string) (calls.CallList, error) {
	var out calls.CallList
	err := c.do(ctx, http.MethodGet, callListPath(id), nil, &out)
	return out, err
}

func (c *Client) CreateCallList(ctx context.Context, in calls.NewCallList) (calls.CallList, error) {
	var out calls.CallList
	err := c.do(ctx, http.MethodPost, "/call-lists", in, &out)
	return out, err
}

func (c *Client) UpdateCallList(ctx context.Context, id string, in calls.CallListUpdate) (calls.CallList, error) {
	var out calls.CallList
	err := c.do(ctx, http.MethodPut, callListPath(id), in, &out)
	return out, err
}

func (c *Client) DeleteCallList(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, callListPath(id), nil, nil)
}

// StartCallList moves a campaign to active.
func (c *Client) StartCallList(ctx context.Context, id string) (calls.ActionResult, error) {
	var out calls.ActionResult
	err := c.do(ctx, http.MethodPost, callListPath(id)+"/start", nil, &out)
	return out, err
}

// PauseCallList moves a campaign to paused.
func (c *Client) PauseCallList(ctx context.Context, id string) (calls.ActionResult, error) {
	var out calls.ActionResult
	err := c.do(ctx, http.MethodPost, callListPath(id)+"/pause", nil, &out)
	return out, err
}

type addContactsRequest struct {
	Contacts []contacts.Contact `json:"contacts"`
}

// AddContacts appends contacts to an existing campaign.
func (c *Client) AddContacts(ctx context.Context, id string, in []contacts.Contact) (calls.CallList, error) {
	var out calls.CallList
	err := c.do(ctx, http.MethodPost, callListPath(id)+"/contacts", addContactsRequest{Contacts: in}, &out)
	return out, err
}
