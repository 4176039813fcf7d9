package paytoken

import (
	"context"

	ua "github.com/mileusna/useragent"

	"github.com/MrEisbear/Silk/internal/domain/entity"
	errs "github.com/MrEisbear/Silk/internal/domain/error"
	"github.com/MrEisbear/Silk/internal/domain/port/usecase"
)

// Issue validates the sender's PIN and mints a short-lived single-use
// token for the described payment. No funds move here; the debit happens
// on consumption.
func (s *Service) Issue(ctx context.Context, req usecase.IssueTokenRequest) (*usecase.TokenResult, error) {
	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if req.RecipientType != entity.RecipientTypePersonal {
		return nil, errs.ErrUnsupportedRecipient
	}
	if req.WebhookURL != "" {
		if err := s.validateWebhookURL(req.WebhookURL); err != nil {
			return nil, err
		}
	}

	accounts := s.uow.GetAccountRepository(ctx)
	sender, err := accounts.GetByNumber(ctx, req.AccountNumber)
	if err != nil {
		return nil, err
	}
	if !sender.IsPersonal() {
		return nil, errs.ErrUnsupportedAccountType
	}
	if !sender.IsOwnedBy(req.ActorID) {
		return nil, errs.ErrForbidden
	}
	if err := sender.CheckUsable(); err != nil {
		return nil, err
	}

	// The PIN check commits its failure counter in its own transaction,
	// so an aborted issuance still counts the attempt.
	if err := s.pins.Verify(ctx, sender.UUID, req.Pin); err != nil {
		return nil, err
	}

	recipient, err := accounts.GetByUUID(ctx, req.RecipientUUID)
	if err != nil {
		return nil, err
	}
	if !recipient.IsPersonal() {
		return nil, errs.ErrUnsupportedRecipient
	}
	if err := recipient.CheckUsable(); err != nil {
		return nil, err
	}

	// Balance is rechecked at consumption; failing early here just spares
	// the sender a token that can never succeed.
	tax := entity.TaxFor(amount, s.payments.TaxRate(req.TaxCategory))
	if err := sender.CheckDebit(amount.Add(tax)); err != nil {
		return nil, err
	}

	tokenString, err := generateToken()
	if err != nil {
		return nil, err
	}

	parsed := ua.Parse(req.UserAgent)
	now := s.timeProvider.Now()
	token := &entity.PaymentToken{
		Token:         tokenString,
		SenderUUID:    sender.UUID,
		RecipientUUID: recipient.UUID,
		Amount:        amount,
		TaxCategory:   req.TaxCategory,
		Label:         req.Label,
		WebhookURL:    req.WebhookURL,
		Status:        entity.TokenStatusIssued,
		Expires:       now.Add(s.cfg.TTL),
		IPAddress:     req.IPAddress,
		UserAgent: entity.UserAgentInfo{
			Raw:     req.UserAgent,
			Browser: parsed.Name,
			OS:      parsed.OS,
			Device:  parsed.Device,
			Mobile:  parsed.Mobile,
			Bot:     parsed.Bot,
		},
		CreatedAt: now,
	}

	err = s.withTx(ctx, func(txCtx context.Context) error {
		return s.uow.GetPaymentTokenRepository(txCtx).Create(txCtx, token)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payment token issued", map[string]any{
		"sender_uuid":    sender.UUID,
		"recipient_uuid": recipient.UUID,
		"amount":         entity.FormatAmount(amount),
		"expires":        token.Expires,
		"ip_address":     req.IPAddress,
	})
	return &usecase.TokenResult{
		Token:   tokenString,
		Amount:  entity.FormatAmount(amount),
		Expires: token.Expires,
	}, nil
}
