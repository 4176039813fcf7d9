package giftcode

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// Redeem credits a code's amount to the redeemer's account and retires the
// code. A code found to be past its expiry is retired with a refund to its
// creator instead; the two transitions are mutually exclusive because the
// code row stays locked for the whole transaction.
func (s *Service) Redeem(ctx context.Context, actorID uint64, code string, accountUUID string) (*usecase.RedeemResult, error) {
	var result *usecase.RedeemResult
	var expired bool

	err := s.withTx(ctx, func(txCtx context.Context) error {
		codes := s.uow.GetGiftCodeRepository(txCtx)

		giftCode, err := codes.GetByCodeForUpdate(txCtx, code)
		if err != nil {
			return err
		}
		if !giftCode.IsActive {
			if giftCode.RedeemedBy != nil {
				return errs.ErrAlreadyRedeemed
			}
			return errs.ErrGiftCodeExpired
		}

		now := s.timeProvider.Now()
		if giftCode.IsExpired(now) {
			// Terminal expiry transition: refund the creator and commit.
			// The caller still sees an expired error afterwards.
			expired = true
			return s.refundExpired(txCtx, giftCode)
		}

		accounts := s.uow.GetAccountRepository(txCtx)
		account, err := accounts.GetByUUID(txCtx, accountUUID)
		if err != nil {
			return err
		}
		if !account.IsPersonal() {
			return errs.ErrUnsupportedAccountType
		}
		if !account.IsOwnedBy(actorID) {
			return errs.ErrForbidden
		}
		account, err = accounts.GetForUpdate(txCtx, account.ID)
		if err != nil {
			return err
		}
		if err := account.CheckUsable(); err != nil {
			return err
		}

		account.Balance = account.Balance.Add(giftCode.Amount)
		if err := accounts.Update(txCtx, account); err != nil {
			return err
		}

		giftCode.IsActive = false
		giftCode.RedeemedBy = &account.UUID
		giftCode.RedeemedAt = &now
		if err := codes.Update(txCtx, giftCode); err != nil {
			return err
		}

		entry := entity.NewTransaction(uuid.NewString(), entity.TransactionTypeGiftcard,
			nil, &account.ID, giftCode.Amount, "Gift code redeemed")
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, entry); err != nil {
			return err
		}

		result = &usecase.RedeemResult{
			Amount:          entity.FormatAmount(giftCode.Amount),
			TransactionUUID: entry.UUID,
			NewBalance:      entity.FormatAmount(account.Balance),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, errs.ErrGiftCodeExpired
	}

	s.logger.Info("Gift code redeemed", map[string]any{
		"actor_id":         actorID,
		"account_uuid":     accountUUID,
		"amount":           result.Amount,
		"transaction_uuid": result.TransactionUUID,
	})
	return result, nil
}

// refundExpired retires an expired code and returns the escrowed funds to
// the creator account. System codes have no creator to refund.
func (s *Service) refundExpired(txCtx context.Context, giftCode *entity.GiftCode) error {
	giftCode.IsActive = false
	if err := s.uow.GetGiftCodeRepository(txCtx).Update(txCtx, giftCode); err != nil {
		return err
	}
	if giftCode.IsSystemIssued() {
		return nil
	}

	accounts := s.uow.GetAccountRepository(txCtx)
	creator, err := accounts.GetByUUID(txCtx, giftCode.CreatedBy)
	if err != nil {
		if errs.IsNotFoundError(err) {
			// Creator account is gone; the escrow is forfeited but the
			// code must still reach its terminal state.
			s.logger.Warn("Expired gift code has no creator account to refund", map[string]any{
				"created_by": giftCode.CreatedBy,
			})
			return nil
		}
		return err
	}

	creator, err = accounts.GetForUpdate(txCtx, creator.ID)
	if err != nil {
		return err
	}
	creator.Balance = creator.Balance.Add(giftCode.Amount)
	if err := accounts.Update(txCtx, creator); err != nil {
		return err
	}

	entry := entity.NewTransaction(uuid.NewString(), entity.TransactionTypeRefund,
		nil, &creator.ID, giftCode.Amount, "Expired gift code refund")
	if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, entry); err != nil {
		return err
	}

	s.logger.Info("Expired gift code refunded", map[string]any{
		"creator_uuid": creator.UUID,
		"amount":       entity.FormatAmount(giftCode.Amount),
	})
	return nil
}
