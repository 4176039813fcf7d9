package giftcode

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// Issue debits the creator account and mints a code holding the amount in
// escrow until it is redeemed or expires.
func (s *Service) Issue(ctx context.Context, actorID uint64, accountUUID string, rawAmount string) (*usecase.GiftCodeResult, error) {
	amount, err := entity.ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	var result *usecase.GiftCodeResult
	err = s.withTx(ctx, func(txCtx context.Context) error {
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
		if err := account.CheckDebit(amount); err != nil {
			return err
		}

		codes := s.uow.GetGiftCodeRepository(txCtx)
		code, err := s.generateCode(txCtx, codes)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now()
		giftCode := &entity.GiftCode{
			Code:      code,
			Amount:    amount,
			CreatedBy: account.UUID,
			ExpiresAt: now.Add(s.cfg.TTL),
			IsActive:  true,
			CreatedAt: now,
		}
		if err := codes.Create(txCtx, giftCode); err != nil {
			return err
		}

		account.Balance = account.Balance.Sub(amount)
		if err := accounts.Update(txCtx, account); err != nil {
			return err
		}

		entry := entity.NewTransaction(uuid.NewString(), entity.TransactionTypeGiftcard,
			&account.ID, nil, amount, "Gift code issued")
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, entry); err != nil {
			return err
		}

		result = &usecase.GiftCodeResult{
			Code:      code,
			Amount:    entity.FormatAmount(amount),
			ExpiresAt: giftCode.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Gift code issued", map[string]any{
		"actor_id":     actorID,
		"account_uuid": accountUUID,
		"amount":       result.Amount,
		"expires_at":   result.ExpiresAt,
	})
	return result, nil
}

// IssueSystem mints a code with no escrow debit. These codes are backed
// by nothing and simply deactivate on expiry.
func (s *Service) IssueSystem(ctx context.Context, adminID uint64, rawAmount string) (*usecase.GiftCodeResult, error) {
	amount, err := entity.ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	var result *usecase.GiftCodeResult
	err = s.withTx(ctx, func(txCtx context.Context) error {
		codes := s.uow.GetGiftCodeRepository(txCtx)
		code, err := s.generateCode(txCtx, codes)
		if err != nil {
			return err
		}

		now := s.timeProvider.Now()
		giftCode := &entity.GiftCode{
			Code:      code,
			Amount:    amount,
			CreatedBy: entity.SystemCreator,
			ExpiresAt: now.Add(s.cfg.TTL),
			IsActive:  true,
			CreatedAt: now,
		}
		if err := codes.Create(txCtx, giftCode); err != nil {
			return err
		}

		result = &usecase.GiftCodeResult{
			Code:      code,
			Amount:    entity.FormatAmount(amount),
			ExpiresAt: giftCode.ExpiresAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("System gift code issued", map[string]any{
		"admin_id": adminID,
		"amount":   result.Amount,
	})
	return result, nil
}
