package api

import (
	"context"
)

type MockAPIGenerator struct {
	MockClient MockAPIClient
	Paths      []string
}

func (m *MockAPIGenerator) New(path string, args ...any) Client {
	m.Paths = append(m.Paths, path)
	return &m.MockClient
}

type MockAPIClient struct {
	BodyFunc func(body Body) Client
	POSTFunc func(ctx context.Context, opts ...Opt) (*Response, error)
}

func (c *MockAPIClient) Body(body Body) Client {
	if c.BodyFunc != nil {
		return c.BodyFunc(body)
	}

	return c
}

func (c *MockAPIClient) POST(ctx context.Context, opts ...Opt) (*Response, error) {
	if c.POSTFunc != nil {
		return c.POSTFunc(ctx, opts...)
	}

	panic("not implemented")
}
