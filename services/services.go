// Package services maps typed parameters onto backend REST calls.
// Every method performs exactly one request through *apiclient.Client.
package services

import (
	"net/url"
	"strconv"

	"github.com/dmitrymomot/blogfront/pkg/apiclient"
)

// Services groups the resource services sharing one client.
type Services struct {
	Users      *Users
	Posts      *Posts
	Categories *Categories
	Comments   *Comments
}

// New builds all resource services on top of c.
func New(c *apiclient.Client) *Services {
	return &Services{
		Users:      &Users{c: c},
		Posts:      &Posts{c: c},
		Categories: &Categories{c: c},
		Comments:   &Comments{c: c},
	}
}

// ListParams filters a paginated list.
type ListParams struct {
	Search string
	Page   int
	Limit  int
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set("searchKeyword", p.Search)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}
