package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// AdminAdjust applies a signed balance correction to one of a user's
// accounts. This is the only path that bypasses the frozen and deleted
// checks; role verification happened at the request boundary.
func (s *Service) AdminAdjust(ctx context.Context, req usecase.AdminAdjustRequest) (*usecase.LedgerResult, error) {
	delta, err := decimal.NewFromString(req.Amount)
	if err != nil || delta.IsZero() {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, req.Amount)
	}
	if err := entity.ValidateAmount(delta.Abs()); err != nil {
		return nil, err
	}

	var result *usecase.LedgerResult
	err = s.withTx(ctx, func(txCtx context.Context) error {
		if _, err := s.uow.GetUserRepository(txCtx).GetByID(txCtx, req.UserID); err != nil {
			return err
		}

		accounts := s.uow.GetAccountRepository(txCtx)
		target, err := s.resolveAdjustTarget(txCtx, req)
		if err != nil {
			return err
		}

		account, err := accounts.GetForUpdate(txCtx, target.ID)
		if err != nil {
			return err
		}

		newBalance := account.Balance.Add(delta)
		if newBalance.IsNegative() {
			return errs.NewInsufficientFundsError(account.UUID,
				entity.FormatAmount(delta.Abs()), entity.FormatAmount(account.Balance))
		}

		account.Balance = newBalance
		if err := accounts.Update(txCtx, account); err != nil {
			return err
		}

		entry := entity.NewTransaction(uuid.NewString(), entity.TransactionTypeAdminAdj,
			nil, nil, delta.Abs(), req.Reason)
		if delta.IsNegative() {
			entry.FromAccountID = &account.ID
		} else {
			entry.ToAccountID = &account.ID
		}
		entry.Metadata = map[string]any{
			"admin_id": req.AdminID,
			"reason":   req.Reason,
		}
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, entry); err != nil {
			return err
		}

		result = &usecase.LedgerResult{
			TransactionUUID: entry.UUID,
			Amount:          entity.FormatAmount(delta.Abs()),
			NewBalance:      entity.FormatAmount(account.Balance),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Admin adjustment applied", map[string]any{
		"admin_id":         req.AdminID,
		"user_id":          req.UserID,
		"amount":           req.Amount,
		"reason":           req.Reason,
		"transaction_uuid": result.TransactionUUID,
	})
	return result, nil
}

// resolveAdjustTarget finds the account to adjust: the user's account
// matching the given UUID, or their first account when none is named.
func (s *Service) resolveAdjustTarget(txCtx context.Context, req usecase.AdminAdjustRequest) (*entity.Account, error) {
	accounts := s.uow.GetAccountRepository(txCtx)

	owned, err := accounts.GetByHolder(txCtx, entity.HolderTypeUser, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return nil, errs.ErrAccountNotFound
	}
	if req.AccountUUID == "" {
		return owned[0], nil
	}
	for _, account := range owned {
		if account.UUID == req.AccountUUID {
			return account, nil
		}
	}
	return nil, errs.ErrAccountNotFound
}
