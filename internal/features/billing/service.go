package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/config"
	"go-spear/internal/features/audit"
	"go-spear/internal/features/notification"
	"go-spear/internal/features/rules"

	"github.com/stripe/stripe-go/v82"
	sub "github.com/stripe/stripe-go/v82/subscription"
	"go.uber.org/zap"
)

type BillingService interface {
	// HandleEvent processes a verified Stripe event. Replays of an
	// already-processed event id are dropped silently.
	HandleEvent(ctx context.Context, event stripe.Event) error
	ListEvents(ctx context.Context, limit int64) ([]ProcessedEvent, error)

	// ScanSubscriptions looks for subscriptions scheduled to cancel soon
	// and raises an admin notification. Run daily by the scheduler.
	ScanSubscriptions(ctx context.Context) error
}

type BillingServiceImpl struct {
	repo          BillingRepository
	notifications notification.NotificationService
	rules         rules.RuleService
	audit         audit.AuditService
	logger        *zap.Logger
}

func NewBillingService(
	cfg *config.Config,
	repo BillingRepository,
	notifications notification.NotificationService,
	ruleService rules.RuleService,
	auditService audit.AuditService,
	logger *zap.Logger,
) BillingService {
	stripe.Key = cfg.StripeKey
	return &BillingServiceImpl{
		repo:          repo,
		notifications: notifications,
		rules:         ruleService,
		audit:         auditService,
		logger:        logger,
	}
}

func (s *BillingServiceImpl) HandleEvent(ctx context.Context, event stripe.Event) error {
	fresh, err := s.repo.MarkProcessed(ctx, event.ID, string(event.Type))
	if err != nil {
		return fmt.Errorf("failed to record billing event: %w", err)
	}
	if !fresh {
		s.logger.Debug("billing event replayed, skipping", zap.String("event", event.ID))
		return nil
	}

	switch event.Type {
	case stripe.EventTypeInvoicePaymentFailed:
		return s.handlePaymentFailed(ctx, event)

	case stripe.EventTypeCustomerSubscriptionUpdated:
		return s.handleSubscriptionUpdated(ctx, event)

	case stripe.EventTypeCustomerSubscriptionDeleted:
		return s.handleSubscriptionDeleted(ctx, event)

	case stripe.EventTypeCheckoutSessionCompleted:
		return s.handleCheckoutCompleted(ctx, event)

	default:
		s.logger.Debug("unhandled billing event type", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *BillingServiceImpl) ListEvents(ctx context.Context, limit int64) ([]ProcessedEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListRecent(ctx, limit)
}

func (s *BillingServiceImpl) handlePaymentFailed(ctx context.Context, event stripe.Event) error {
	var invoice stripe.Invoice
	if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
		return fmt.Errorf("failed to parse invoice: %w", err)
	}

	amount := formatAmount(invoice.AmountDue, invoice.Currency)

	adminIn := notification.NewAdminNotification(
		"billing",
		"Invoice payment failed",
		fmt.Sprintf("Payment of %s failed for %s.", amount, invoice.CustomerEmail),
		notification.KindAlert,
	).WithPriority(notification.PriorityUrgent).WithActions(
		notification.Action{Label: "Open invoice", Kind: notification.ActionLink, URL: invoice.HostedInvoiceURL},
	)
	if err := s.notifications.Publish(ctx, adminIn); err != nil {
		s.logger.Warn("billing admin notification failed", zap.Error(err))
	}

	clientIn := notification.NewClientNotification(
		"billing",
		"Payment failed",
		fmt.Sprintf("We could not collect your payment of %s. Please update your payment method.", amount),
		notification.KindAlert,
	).WithPriority(notification.PriorityHigh).WithActions(
		notification.Action{Label: "Update payment method", Kind: notification.ActionView, URL: "/billing/payment-methods"},
	)
	if err := s.notifications.Publish(ctx, clientIn); err != nil {
		s.logger.Warn("billing client notification failed", zap.Error(err))
	}

	s.audit.LogChange(ctx, common_models.AuditActionBilling, "billing", invoice.ID, map[string]common_models.Change{
		"payment": {New: "FAILED"},
	})

	s.rules.Dispatch(ctx, common_models.AppEvent{
		Event: "billing.payment_failed",
		Payload: map[string]interface{}{
			"invoice_id": invoice.ID,
			"amount":     amount,
			"customer":   invoice.CustomerEmail,
		},
		At: time.Now(),
	})
	return nil
}

func (s *BillingServiceImpl) handleSubscriptionUpdated(ctx context.Context, event stripe.Event) error {
	var subscription stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}

	title := "Subscription updated"
	message := "Your subscription details have changed."
	if subscription.CancelAtPeriodEnd {
		title = "Subscription scheduled to cancel"
		message = "Your subscription will end at the close of the current billing period."
	}

	in := notification.NewClientNotification("subscription", title, message, notification.KindInfo).
		WithPriority(notification.PriorityMedium).
		WithActions(notification.Action{Label: "Manage subscription", Kind: notification.ActionView, URL: "/billing/subscription"})
	return s.notifications.Publish(ctx, in)
}

func (s *BillingServiceImpl) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var subscription stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
		return fmt.Errorf("failed to parse subscription: %w", err)
	}

	in := notification.NewClientNotification(
		"subscription",
		"Subscription canceled",
		"Your subscription has ended. Device management features are now read-only.",
		notification.KindWarning,
	).WithPriority(notification.PriorityHigh)
	if err := s.notifications.Publish(ctx, in); err != nil {
		return err
	}

	s.rules.Dispatch(ctx, common_models.AppEvent{
		Event: "billing.subscription_deleted",
		Payload: map[string]interface{}{
			"subscription_id": subscription.ID,
		},
		At: time.Now(),
	})
	return nil
}

func (s *BillingServiceImpl) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to parse checkout session: %w", err)
	}

	in := notification.NewClientNotification(
		"billing",
		"Payment received",
		fmt.Sprintf("Thanks! Your payment of %s was processed.", formatAmount(session.AmountTotal, session.Currency)),
		notification.KindSuccess,
	)
	return s.notifications.Publish(ctx, in)
}

func (s *BillingServiceImpl) ScanSubscriptions(ctx context.Context) error {
	params := &stripe.SubscriptionListParams{}
	params.Limit = stripe.Int64(100)
	params.Context = ctx

	cutoff := time.Now().Add(7 * 24 * time.Hour).Unix()
	ending := 0

	iter := sub.List(params)
	for iter.Next() {
		subscription := iter.Subscription()
		if subscription.CancelAtPeriodEnd && subscription.CancelAt > 0 && subscription.CancelAt <= cutoff {
			ending++
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("subscription scan failed: %w", err)
	}

	if ending == 0 {
		s.logger.Info("subscription scan complete, nothing ending soon")
		return nil
	}

	in := notification.NewAdminNotification(
		"billing",
		fmt.Sprintf("%d subscriptions ending this week", ending),
		"Review the accounts scheduled to cancel before their period closes.",
		notification.KindWarning,
	).WithPriority(notification.PriorityMedium)
	return s.notifications.Publish(ctx, in)
}

func formatAmount(amount int64, currency stripe.Currency) string {
	return fmt.Sprintf("%.2f %s", float64(amount)/100, strings.ToUpper(string(currency)))
}
