package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// Pay moves funds from an account the actor owns to any account, routing
// tax for the given category to the configured sink account.
func (s *Service) Pay(ctx context.Context, req usecase.PayRequest) (*usecase.LedgerResult, error) {
	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if req.FromUUID == req.ToUUID {
		return nil, errs.ErrSelfTransfer
	}

	var result *usecase.LedgerResult
	err = s.withTx(ctx, func(txCtx context.Context) error {
		from, err := s.uow.GetAccountRepository(txCtx).GetByUUID(txCtx, req.FromUUID)
		if err != nil {
			return err
		}
		if !from.IsOwnedBy(req.ActorID) {
			return errs.ErrForbidden
		}

		result, err = s.executePayment(txCtx, paymentSpec{
			fromUUID:    req.FromUUID,
			toUUID:      req.ToUUID,
			amount:      amount,
			description: req.Description,
			taxCategory: req.TaxCategory,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment completed", map[string]any{
		"actor_id":         req.ActorID,
		"from_uuid":        req.FromUUID,
		"to_uuid":          req.ToUUID,
		"amount":           result.Amount,
		"tax":              result.Tax,
		"tax_category":     req.TaxCategory,
		"transaction_uuid": result.TransactionUUID,
	})
	return result, nil
}

// PayInTransaction executes a pre-authorized payment inside an already
// open unit of work. The token consume path uses this so the token state
// transition and the payment commit or roll back together.
func (s *Service) PayInTransaction(txCtx context.Context, fromUUID, toUUID string, amount decimal.Decimal, description, taxCategory string) (*usecase.LedgerResult, error) {
	return s.executePayment(txCtx, paymentSpec{
		fromUUID:    fromUUID,
		toUUID:      toUUID,
		amount:      amount,
		description: description,
		taxCategory: taxCategory,
	})
}

// paymentSpec describes a payment to execute inside an open transaction.
type paymentSpec struct {
	fromUUID    string
	toUUID      string
	amount      decimal.Decimal
	description string
	taxCategory string
}

// executePayment performs the taxed payment inside the caller's unit of
// work. Ownership of the source account must already be authorized; the
// token consume path reuses this after its own PIN-backed authorization.
//
// The sender is debited amount plus tax, the receiver credited the amount
// and the sink credited the tax, so the sum over all three accounts is
// conserved. One payment row and, when tax applies, one tax row are
// appended in the same transaction.
func (s *Service) executePayment(txCtx context.Context, spec paymentSpec) (*usecase.LedgerResult, error) {
	accounts := s.uow.GetAccountRepository(txCtx)

	from, err := accounts.GetByUUID(txCtx, spec.fromUUID)
	if err != nil {
		return nil, err
	}
	to, err := accounts.GetByUUID(txCtx, spec.toUUID)
	if err != nil {
		return nil, err
	}

	rate := s.TaxRate(spec.taxCategory)
	tax := entity.TaxFor(spec.amount, rate)

	lockIDs := []uint64{from.ID, to.ID}
	var sink *entity.Account
	if tax.IsPositive() {
		sink, err = accounts.GetByUUID(txCtx, s.cfg.TaxSinkAccountUUID)
		if err != nil {
			return nil, errs.NewLedgerError("pay", spec.fromUUID, spec.toUUID,
				entity.FormatAmount(spec.amount), "tax sink account unavailable", err)
		}
		lockIDs = append(lockIDs, sink.ID)
	}

	locked, err := lockAccounts(txCtx, accounts, lockIDs...)
	if err != nil {
		return nil, err
	}
	from, to = locked[from.ID], locked[to.ID]
	if sink != nil {
		sink = locked[sink.ID]
	}

	if err := from.CheckUsable(); err != nil {
		return nil, err
	}
	if err := to.CheckUsable(); err != nil {
		return nil, err
	}
	total := spec.amount.Add(tax)
	if err := from.CheckDebit(total); err != nil {
		return nil, err
	}

	from.Balance = from.Balance.Sub(total)
	to.Balance = to.Balance.Add(spec.amount)
	if err := accounts.Update(txCtx, from); err != nil {
		return nil, err
	}
	if err := accounts.Update(txCtx, to); err != nil {
		return nil, err
	}

	transactions := s.uow.GetTransactionRepository(txCtx)
	payment := entity.NewTransaction(uuid.NewString(), entity.TransactionTypePayment,
		&from.ID, &to.ID, spec.amount, spec.description)
	payment.TaxCategory = spec.taxCategory
	if err := transactions.Create(txCtx, payment); err != nil {
		return nil, err
	}

	result := &usecase.LedgerResult{
		TransactionUUID: payment.UUID,
		Amount:          entity.FormatAmount(spec.amount),
		Tax:             entity.FormatAmount(tax),
		NewBalance:      entity.FormatAmount(from.Balance),
	}

	if sink != nil {
		sink.Balance = sink.Balance.Add(tax)
		if err := accounts.Update(txCtx, sink); err != nil {
			return nil, err
		}
		taxEntry := entity.NewTransaction(uuid.NewString(), entity.TransactionTypeTax,
			&from.ID, &sink.ID, tax, "Tax for "+payment.UUID)
		taxEntry.TaxCategory = spec.taxCategory
		if err := transactions.Create(txCtx, taxEntry); err != nil {
			return nil, err
		}
		result.TaxUUID = taxEntry.UUID
	}

	return result, nil
}
