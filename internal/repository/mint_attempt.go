package repository

import (
	"context"
	"errors"

	"github.com/questx-lab/nftgallery/internal/entity"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
	"gorm.io/gorm"
)

type MintAttemptRepository interface {
	Create(ctx context.Context, e *entity.MintAttempt) error
	Upsert(ctx context.Context, e *entity.MintAttempt) error
	UpdateByID(ctx context.Context, id int64, data *entity.MintAttempt) error
	GetByID(ctx context.Context, id int64) (*entity.MintAttempt, error)
	GetListByWalletAddress(ctx context.Context, walletAddress string, offset, limit int) ([]entity.MintAttempt, error)
}

type mintAttemptRepository struct{}

func NewMintAttemptRepository() *mintAttemptRepository {
	return &mintAttemptRepository{}
}

func (r *mintAttemptRepository) Create(ctx context.Context, e *entity.MintAttempt) error {
	return xcontext.DB(ctx).Create(e).Error
}

// Upsert creates the attempt or, if an attempt with the same id exists,
// overwrites its outcome columns. Events may be delivered more than once.
func (r *mintAttemptRepository) Upsert(ctx context.Context, e *entity.MintAttempt) error {
	var existed entity.MintAttempt
	err := xcontext.DB(ctx).Select("id").Take(&existed, "id=?", e.ID).Error
	if err == nil {
		return r.UpdateByID(ctx, e.ID, e)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.Create(ctx, e)
}

func (r *mintAttemptRepository) UpdateByID(ctx context.Context, id int64, data *entity.MintAttempt) error {
	return xcontext.DB(ctx).Model(&entity.MintAttempt{}).
		Where("id=?", id).
		Updates(map[string]any{
			"status":        data.Status,
			"signature":     data.Signature,
			"asset_address": data.AssetAddress,
			"error":         data.Error,
		}).Error
}

func (r *mintAttemptRepository) GetByID(ctx context.Context, id int64) (*entity.MintAttempt, error) {
	var result entity.MintAttempt
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *mintAttemptRepository) GetListByWalletAddress(
	ctx context.Context, walletAddress string, offset, limit int,
) ([]entity.MintAttempt, error) {
	var result []entity.MintAttempt
	err := xcontext.DB(ctx).
		Where("wallet_address=?", walletAddress).
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
