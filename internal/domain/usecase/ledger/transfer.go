package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// Transfer moves funds between two accounts owned by the same actor.
func (s *Service) Transfer(ctx context.Context, req usecase.TransferRequest) (*usecase.LedgerResult, error) {
	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if req.FromUUID == req.ToUUID {
		return nil, errs.ErrSelfTransfer
	}

	var result *usecase.LedgerResult
	err = s.withTx(ctx, func(txCtx context.Context) error {
		accounts := s.uow.GetAccountRepository(txCtx)

		from, err := accounts.GetByUUID(txCtx, req.FromUUID)
		if err != nil {
			return err
		}
		to, err := accounts.GetByUUID(txCtx, req.ToUUID)
		if err != nil {
			return err
		}
		if !from.IsOwnedBy(req.ActorID) || !to.IsOwnedBy(req.ActorID) {
			return errs.ErrForbidden
		}

		// Re-read both rows under lock; balances may have moved since the
		// unlocked lookup.
		locked, err := lockAccounts(txCtx, accounts, from.ID, to.ID)
		if err != nil {
			return err
		}
		from, to = locked[from.ID], locked[to.ID]

		if err := from.CheckUsable(); err != nil {
			return err
		}
		if err := to.CheckUsable(); err != nil {
			return err
		}
		if err := from.CheckDebit(amount); err != nil {
			return err
		}

		from.Balance = from.Balance.Sub(amount)
		to.Balance = to.Balance.Add(amount)
		if err := accounts.Update(txCtx, from); err != nil {
			return err
		}
		if err := accounts.Update(txCtx, to); err != nil {
			return err
		}

		entry := entity.NewTransaction(uuid.NewString(), entity.TransactionTypeTransfer,
			&from.ID, &to.ID, amount, "Internal transfer")
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, entry); err != nil {
			return err
		}

		result = &usecase.LedgerResult{
			TransactionUUID: entry.UUID,
			Amount:          entity.FormatAmount(amount),
			NewBalance:      entity.FormatAmount(from.Balance),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transfer completed", map[string]any{
		"actor_id":         req.ActorID,
		"from_uuid":        req.FromUUID,
		"to_uuid":          req.ToUUID,
		"amount":           entity.FormatAmount(amount),
		"transaction_uuid": result.TransactionUUID,
	})
	return result, nil
}
