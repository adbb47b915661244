package domain

import (
	"context"
	"errors"

	"github.com/questx-lab/nftgallery/internal/domain/mint"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/internal/repository"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type GalleryDomain interface {
	GetCatalog(context.Context, *model.GetCatalogRequest) (*model.GetCatalogResponse, error)
	GetGallery(context.Context, *model.GetGalleryRequest) (*model.GetGalleryResponse, error)
	GetProfile(context.Context, *model.GetProfileRequest) (*model.GetProfileResponse, error)
	GetMintHistory(context.Context, *model.GetMintHistoryRequest) (*model.GetMintHistoryResponse, error)
}

type galleryDomain struct {
	evaluator       *mint.Evaluator
	catalog         *mint.Catalog
	profileFetcher  mint.ProfileFetcher
	mintAttemptRepo repository.MintAttemptRepository
}

func NewGalleryDomain(
	evaluator *mint.Evaluator,
	catalog *mint.Catalog,
	profileFetcher mint.ProfileFetcher,
	mintAttemptRepo repository.MintAttemptRepository,
) *galleryDomain {
	return &galleryDomain{
		evaluator:       evaluator,
		catalog:         catalog,
		profileFetcher:  profileFetcher,
		mintAttemptRepo: mintAttemptRepo,
	}
}

func (d *galleryDomain) GetCatalog(
	ctx context.Context, req *model.GetCatalogRequest,
) (*model.GetCatalogResponse, error) {
	return &model.GetCatalogResponse{NFTs: d.catalog.All()}, nil
}

// GetGallery evaluates every slot for the wallet. A failed profile fetch is
// reported inline and the slots gated by a rule stay locked.
func (d *galleryDomain) GetGallery(
	ctx context.Context, req *model.GetGalleryRequest,
) (*model.GetGalleryResponse, error) {
	resp := &model.GetGalleryResponse{}

	if req.Username != "" {
		profile, err := d.profileFetcher.FetchProfile(ctx, req.Username)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot fetch profile of %s: %v", req.Username, err)
			resp.ProfileError = "Failed to fetch user data"
		} else {
			profile.Username = req.Username
			resp.Profile = profile
		}
	}

	resp.Slots = mint.BuildGallery(d.evaluator, d.catalog, &req.MintData, resp.Profile, req.WalletAddress)
	return resp, nil
}

func (d *galleryDomain) GetProfile(
	ctx context.Context, req *model.GetProfileRequest,
) (*model.GetProfileResponse, error) {
	if req.Username == "" {
		return nil, errorx.New(errorx.BadRequest, "Require username")
	}

	profile, err := d.profileFetcher.FetchProfile(ctx, req.Username)
	if err != nil {
		var errx errorx.Error
		if errors.As(err, &errx) {
			return nil, errx
		}

		xcontext.Logger(ctx).Errorf("Cannot fetch profile of %s: %v", req.Username, err)
		return nil, errorx.New(errorx.ProfileFetchFailed, "Failed to fetch user data")
	}

	profile.Username = req.Username
	return &model.GetProfileResponse{Profile: *profile}, nil
}

func (d *galleryDomain) GetMintHistory(
	ctx context.Context, req *model.GetMintHistoryRequest,
) (*model.GetMintHistoryResponse, error) {
	if req.WalletAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Require wallet_address")
	}

	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Offset must be non-negative")
	}

	if req.Limit <= 0 {
		req.Limit = defaultHistoryLimit
	}

	if req.Limit > maxHistoryLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", maxHistoryLimit)
	}

	attempts, err := d.mintAttemptRepo.GetListByWalletAddress(ctx, req.WalletAddress, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get mint attempts: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetMintHistoryResponse{Attempts: []model.MintAttempt{}}
	for i := range attempts {
		resp.Attempts = append(resp.Attempts, convertMintAttempt(&attempts[i]))
	}

	return resp, nil
}
