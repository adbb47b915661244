package client

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/questx-lab/nftgallery/config"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/pkg/api"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

const (
	getUserDataOperation = "GetUserData"
	getUserDataQuery     = `
query GetUserData($username: String!) {
  userByName(name: $username) {
    id
    followingCount
    followerCount
    dscvrPoints
    streak {
      dayCount
      multiplierCount
    }
  }
}`
)

type ProfileCaller interface {
	FetchProfile(ctx context.Context, username string) (*model.UserProfile, error)
}

type profileCaller struct {
	generator api.Generator
	path      string
	timeout   time.Duration
	query     string
	apiKey    string
}

func NewProfileCaller(cfg config.ProfileConfigs) (*profileCaller, error) {
	caller, err := newProfileCaller(api.NewGenerator(cfg.Endpoints...), cfg.Path, cfg.Timeout, getUserDataQuery)
	if err != nil {
		return nil, err
	}

	caller.apiKey = cfg.APIKey
	return caller, nil
}

func newProfileCaller(
	generator api.Generator, path string, timeout time.Duration, query string,
) (*profileCaller, error) {
	if err := validateQuery(query); err != nil {
		return nil, err
	}

	return &profileCaller{
		generator: generator,
		path:      path,
		timeout:   timeout,
		query:     query,
	}, nil
}

// validateQuery makes sure the document declares the operation and its
// username variable before any request is sent.
func validateQuery(query string) error {
	doc, err := parser.ParseQuery(&ast.Source{Name: getUserDataOperation, Input: query})
	if err != nil {
		return fmt.Errorf("cannot parse profile query: %w", err)
	}

	operation := doc.Operations.ForName(getUserDataOperation)
	if operation == nil {
		return fmt.Errorf("not found operation %s", getUserDataOperation)
	}

	if operation.VariableDefinitions.ForName("username") == nil {
		return fmt.Errorf("operation %s does not declare $username", getUserDataOperation)
	}

	return nil
}

func (c *profileCaller) FetchProfile(ctx context.Context, username string) (*model.UserProfile, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var opts []api.Opt
	if c.apiKey != "" {
		opts = append(opts, api.Bearer("Bearer", c.apiKey))
	}

	resp, err := c.generator.New(c.path).
		Body(api.JSON{
			"operationName": getUserDataOperation,
			"query":         c.query,
			"variables":     map[string]any{"username": username},
		}).
		POST(ctx, opts...)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call profile service: %v", err)
		return nil, errorx.New(errorx.ProfileFetchFailed, "Failed to fetch user data")
	}

	if resp.Code != http.StatusOK {
		xcontext.Logger(ctx).Errorf("Profile service returned status %d: %s", resp.Code, resp.RawBody)
		return nil, errorx.New(errorx.ProfileFetchFailed, "Failed to fetch user data")
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		xcontext.Logger(ctx).Errorf("Invalid profile response: %s", resp.RawBody)
		return nil, errorx.New(errorx.ProfileFetchFailed, "Failed to fetch user data")
	}

	if gqlErrors, err := body.GetArray("errors"); err == nil && len(gqlErrors) > 0 {
		xcontext.Logger(ctx).Errorf("Profile service returned errors: %v", gqlErrors)
		return nil, errorx.New(errorx.ProfileFetchFailed, "Failed to fetch user data")
	}

	user, err := body.GetJSON("data.userByName")
	if err != nil {
		xcontext.Logger(ctx).Errorf("Invalid profile response: %v", err)
		return nil, errorx.New(errorx.ProfileFetchFailed, "Failed to fetch user data")
	}

	if user == nil {
		return nil, errorx.New(errorx.NotFound, "Not found user %s", username)
	}

	profile := model.UserProfile{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(countHook),
		Result:     &profile,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create decoder: %v", err)
		return nil, errorx.Unknown
	}

	if err := decoder.Decode(map[string]any(user)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot decode profile: %v", err)
		return nil, errorx.New(errorx.ProfileFetchFailed, "Failed to fetch user data")
	}

	profile.Username = username
	return &profile, nil
}

// countHook turns the counters of a profile into uint64. Counters may arrive
// as numbers or numeric strings, negative or fractional values are rejected.
func countHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.Uint64 {
		return data, nil
	}

	switch v := data.(type) {
	case json.Number:
		return parseCount(v.String())
	case string:
		return parseCount(v)
	case float64:
		if v < 0 || v != math.Trunc(v) || v > math.MaxUint64 {
			return nil, fmt.Errorf("invalid count %v", v)
		}
		return uint64(v), nil
	}

	return data, nil
}

func parseCount(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", s)
	}

	return n, nil
}
