package device

import (
	"context"
	"errors"
	"testing"

	common_models "go-spear/internal/common/models"
	"go-spear/internal/features/notification"
	"go-spear/internal/features/rules"

	"go.uber.org/zap"
)

type fakeTeamViewer struct {
	devices []RemoteDevice
	err     error
}

func (f *fakeTeamViewer) ListDevices(ctx context.Context) ([]RemoteDevice, error) {
	return f.devices, f.err
}

func (f *fakeTeamViewer) ConnectURL(remoteControlID string) string {
	return "https://start.teamviewer.com/device/" + remoteControlID + "/mode/remotecontrol"
}

type memoryDeviceRepo struct {
	devices map[string]*Device
}

func newMemoryDeviceRepo() *memoryDeviceRepo {
	return &memoryDeviceRepo{devices: map[string]*Device{}}
}

func (m *memoryDeviceRepo) Upsert(ctx context.Context, device *Device) error {
	copied := *device
	m.devices[device.DeviceID] = &copied
	return nil
}

func (m *memoryDeviceRepo) FindByDeviceID(ctx context.Context, deviceID string) (*Device, error) {
	d, ok := m.devices[deviceID]
	if !ok {
		return nil, errors.New("not found")
	}
	copied := *d
	return &copied, nil
}

func (m *memoryDeviceRepo) List(ctx context.Context) ([]Device, error) {
	var out []Device
	for _, d := range m.devices {
		out = append(out, *d)
	}
	return out, nil
}

type publishRecorder struct {
	notification.NotificationService
	published []notification.Input
}

func (p *publishRecorder) Publish(ctx context.Context, in notification.Input) error {
	p.published = append(p.published, in)
	return nil
}

type dispatchRecorder struct {
	rules.RuleService
	events []common_models.AppEvent
}

func (d *dispatchRecorder) Dispatch(ctx context.Context, event common_models.AppEvent) {
	d.events = append(d.events, event)
}

func remote(id, alias, state string) RemoteDevice {
	return RemoteDevice{
		DeviceID:        id,
		RemoteControlID: "r" + id,
		Alias:           alias,
		OnlineState:     state,
	}
}

func newSyncFixture(client TeamViewerClient) (*memoryDeviceRepo, *publishRecorder, *dispatchRecorder, DeviceService) {
	repo := newMemoryDeviceRepo()
	notifier := &publishRecorder{}
	dispatcher := &dispatchRecorder{}
	svc := NewDeviceService(repo, client, notifier, dispatcher, zap.NewNop())
	return repo, notifier, dispatcher, svc
}

func TestSyncCachesNewDevicesWithoutNotifying(t *testing.T) {
	client := &fakeTeamViewer{devices: []RemoteDevice{
		remote("d1", "kiosk-1", "Online"),
		remote("d2", "kiosk-2", "Offline"),
	}}
	repo, notifier, _, svc := newSyncFixture(client)

	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	if len(repo.devices) != 2 {
		t.Fatalf("expected 2 cached devices, got %d", len(repo.devices))
	}
	if len(notifier.published) != 0 {
		t.Fatalf("first sight of a device must not notify, got %d", len(notifier.published))
	}
}

func TestSyncNotifiesOnOfflineTransition(t *testing.T) {
	client := &fakeTeamViewer{devices: []RemoteDevice{remote("d1", "kiosk-1", "Online")}}
	_, notifier, dispatcher, svc := newSyncFixture(client)

	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("first Sync: %v", err)
	}

	client.devices = []RemoteDevice{remote("d1", "kiosk-1", "Offline")}
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	if len(notifier.published) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.published))
	}
	got := notifier.published[0]
	if got.Kind != notification.KindAlert {
		t.Errorf("kind = %q, want alert", got.Kind)
	}
	if got.Priority != notification.PriorityHigh {
		t.Errorf("priority = %q, want high", got.Priority)
	}
	if got.Topic != "device" {
		t.Errorf("topic = %q, want device", got.Topic)
	}

	if len(dispatcher.events) != 1 || dispatcher.events[0].Event != "device.offline" {
		t.Fatalf("expected a device.offline rule event, got %+v", dispatcher.events)
	}
}

func TestSyncNotifiesOnRecovery(t *testing.T) {
	client := &fakeTeamViewer{devices: []RemoteDevice{remote("d1", "kiosk-1", "Offline")}}
	_, notifier, _, svc := newSyncFixture(client)

	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("first Sync: %v", err)
	}

	client.devices = []RemoteDevice{remote("d1", "kiosk-1", "Online")}
	if err := svc.Sync(context.Background()); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	if len(notifier.published) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.published))
	}
	got := notifier.published[0]
	if got.Kind != notification.KindSuccess {
		t.Errorf("kind = %q, want success", got.Kind)
	}
	if got.Priority != notification.PriorityLow {
		t.Errorf("priority = %q, want low", got.Priority)
	}
}

func TestSyncStableStateStaysQuiet(t *testing.T) {
	client := &fakeTeamViewer{devices: []RemoteDevice{remote("d1", "kiosk-1", "Online")}}
	_, notifier, _, svc := newSyncFixture(client)

	for i := 0; i < 3; i++ {
		if err := svc.Sync(context.Background()); err != nil {
			t.Fatalf("Sync %d: %v", i, err)
		}
	}

	if len(notifier.published) != 0 {
		t.Fatalf("unchanged state must not notify, got %d", len(notifier.published))
	}
}

func TestSyncPropagatesListError(t *testing.T) {
	client := &fakeTeamViewer{err: errors.New("api down")}
	_, _, _, svc := newSyncFixture(client)

	if err := svc.Sync(context.Background()); err == nil {
		t.Fatal("expected Sync to fail when the device API is unreachable")
	}
}

func TestConnectURLUnknownDevice(t *testing.T) {
	_, _, _, svc := newSyncFixture(&fakeTeamViewer{})

	if _, err := svc.ConnectURL(context.Background(), "ghost"); err == nil {
		t.Fatal("expected an error for an unknown device")
	}
}
