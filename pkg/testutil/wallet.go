package testutil

import (
	"context"

	"github.com/questx-lab/nftgallery/internal/model"
)

type MockConnector struct {
	AddressFunc     func() string
	ConnectFunc     func(ctx context.Context) error
	SignMessageFunc func(ctx context.Context, msg []byte) ([]byte, error)
}

func (m *MockConnector) Address() string {
	if m.AddressFunc != nil {
		return m.AddressFunc()
	}

	return ""
}

func (m *MockConnector) Connect(ctx context.Context) error {
	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}

	return nil
}

func (m *MockConnector) SignMessage(ctx context.Context, msg []byte) ([]byte, error) {
	if m.SignMessageFunc != nil {
		return m.SignMessageFunc(ctx, msg)
	}

	return []byte("signature"), nil
}

type MockConfirmer struct {
	ConfirmFunc func(ctx context.Context, prompt model.MintPrompt) (bool, error)
}

func (m *MockConfirmer) Confirm(ctx context.Context, prompt model.MintPrompt) (bool, error) {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, prompt)
	}

	return true, nil
}
