package api

import (
	"net/http"
)

type bearerOpt struct {
	token string
}

// Bearer attaches an authorization header to the request, e.g. an API key
// for a profile service that requires one.
func Bearer(prefix, token string) *bearerOpt {
	return &bearerOpt{token: prefix + " " + token}
}

func (opt *bearerOpt) Do(client defaultClient, req *http.Request) {
	req.Header.Set("Authorization", opt.token)
}
