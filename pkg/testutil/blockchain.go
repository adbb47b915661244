package testutil

import (
	"context"

	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/pkg/errorx"
)

type MockTransactionService struct {
	BalanceFunc     func(ctx context.Context, address string) (uint64, error)
	PrepareMintFunc func(ctx context.Context, req *model.PrepareMintRequest) (*model.PrepareMintResponse, error)
	SendMintFunc    func(ctx context.Context, req *model.SendMintRequest) (*model.SendMintResponse, error)
}

func (m *MockTransactionService) Balance(ctx context.Context, address string) (uint64, error) {
	if m.BalanceFunc != nil {
		return m.BalanceFunc(ctx, address)
	}

	return 0, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockTransactionService) PrepareMint(
	ctx context.Context, req *model.PrepareMintRequest,
) (*model.PrepareMintResponse, error) {
	if m.PrepareMintFunc != nil {
		return m.PrepareMintFunc(ctx, req)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockTransactionService) SendMint(
	ctx context.Context, req *model.SendMintRequest,
) (*model.SendMintResponse, error) {
	if m.SendMintFunc != nil {
		return m.SendMintFunc(ctx, req)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

type MockProfileFetcher struct {
	FetchProfileFunc func(ctx context.Context, username string) (*model.UserProfile, error)
}

func (m *MockProfileFetcher) FetchProfile(ctx context.Context, username string) (*model.UserProfile, error) {
	if m.FetchProfileFunc != nil {
		return m.FetchProfileFunc(ctx, username)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}
