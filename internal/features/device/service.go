package device

import (
	"context"
	"fmt"
	"time"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/notification"
	"go-spear/internal/features/rules"

	"go.uber.org/zap"
)

type DeviceService interface {
	ListDevices(ctx context.Context) ([]Device, error)
	GetDevice(ctx context.Context, deviceID string) (*Device, error)
	// ConnectURL hands back the remote-control deep link for a device.
	ConnectURL(ctx context.Context, deviceID string) (string, error)
	// Sync pulls the fleet from TeamViewer, refreshes the cache and
	// produces notifications for online-state transitions.
	Sync(ctx context.Context) error
}

type DeviceServiceImpl struct {
	repo          DeviceRepository
	client        TeamViewerClient
	notifications notification.NotificationService
	rules         rules.RuleService
	logger        *zap.Logger
}

func NewDeviceService(
	repo DeviceRepository,
	client TeamViewerClient,
	notifications notification.NotificationService,
	ruleService rules.RuleService,
	logger *zap.Logger,
) DeviceService {
	return &DeviceServiceImpl{
		repo:          repo,
		client:        client,
		notifications: notifications,
		rules:         ruleService,
		logger:        logger,
	}
}

func (s *DeviceServiceImpl) ListDevices(ctx context.Context) ([]Device, error) {
	return s.repo.List(ctx)
}

func (s *DeviceServiceImpl) GetDevice(ctx context.Context, deviceID string) (*Device, error) {
	return s.repo.FindByDeviceID(ctx, deviceID)
}

func (s *DeviceServiceImpl) ConnectURL(ctx context.Context, deviceID string) (string, error) {
	device, err := s.repo.FindByDeviceID(ctx, deviceID)
	if err != nil {
		return "", fmt.Errorf("unknown device %s: %w", deviceID, err)
	}
	return s.client.ConnectURL(device.RemoteID), nil
}

func (s *DeviceServiceImpl) Sync(ctx context.Context) error {
	remote, err := s.client.ListDevices(ctx)
	if err != nil {
		return fmt.Errorf("device sync failed: %w", err)
	}

	now := time.Now()
	for _, rd := range remote {
		state := StateOffline
		if rd.OnlineState == string(StateOnline) {
			state = StateOnline
		}

		cached, findErr := s.repo.FindByDeviceID(ctx, rd.DeviceID)

		device := &Device{
			DeviceID:    rd.DeviceID,
			RemoteID:    rd.RemoteControlID,
			Alias:       rd.Alias,
			GroupID:     rd.GroupID,
			OnlineState: state,
		}
		if state == StateOnline {
			device.LastSeenAt = now
		} else if cached != nil {
			device.LastSeenAt = cached.LastSeenAt
		}

		if err := s.repo.Upsert(ctx, device); err != nil {
			s.logger.Warn("device cache upsert failed", zap.String("device", rd.DeviceID), zap.Error(err))
			continue
		}

		// Only state transitions notify; first sight of a device does not.
		if findErr != nil || cached == nil || cached.OnlineState == state {
			continue
		}
		s.notifyTransition(ctx, device, state)
	}

	s.logger.Info("device sync complete", zap.Int("devices", len(remote)))
	return nil
}

func (s *DeviceServiceImpl) notifyTransition(ctx context.Context, device *Device, state OnlineState) {
	var in notification.Input
	if state == StateOffline {
		in = notification.NewClientNotification(
			"device",
			fmt.Sprintf("%s went offline", device.Alias),
			fmt.Sprintf("Device %s lost its connection.", device.Alias),
			notification.KindAlert,
		).WithPriority(notification.PriorityHigh).WithActions(
			notification.Action{Label: "View device", Kind: notification.ActionView, URL: "/devices/" + device.DeviceID},
		)
	} else {
		in = notification.NewClientNotification(
			"device",
			fmt.Sprintf("%s is back online", device.Alias),
			fmt.Sprintf("Device %s reconnected.", device.Alias),
			notification.KindSuccess,
		).WithPriority(notification.PriorityLow)
	}

	if err := s.notifications.Publish(ctx, in); err != nil {
		s.logger.Warn("device notification failed", zap.String("device", device.DeviceID), zap.Error(err))
	}

	s.rules.Dispatch(ctx, common_models.AppEvent{
		Event: "device." + map[OnlineState]string{StateOnline: "online", StateOffline: "offline"}[state],
		Payload: map[string]interface{}{
			"device_id": device.DeviceID,
			"alias":     device.Alias,
			"state":     string(state),
		},
		At: time.Now(),
	})
}
