package notification

import "time"

// Static seed feeds loaded when a session opens. Exactly one of the two is
// loaded per session, selected by the viewer's role; the feeds are disjoint
// by id.

func adminSeed(now time.Time) []*Notification {
	return []*Notification{
		{
			ID:        "a1",
			Audience:  AudienceAdmin,
			Topic:     "security",
			Title:     "New admin sign-in",
			Message:   "An admin account signed in from an unrecognized browser.",
			Kind:      KindWarning,
			Priority:  PriorityHigh,
			Icon:      "shield",
			Actions:   []Action{{Label: "Review", Kind: ActionView, URL: "/admin/security"}},
			CreatedAt: now.Add(-10 * time.Minute),
		},
		{
			ID:        "a2",
			Audience:  AudienceAdmin,
			Topic:     "device",
			Title:     "Device fleet sync complete",
			Message:   "42 devices refreshed from TeamViewer, 3 currently offline.",
			Kind:      KindInfo,
			Priority:  PriorityLow,
			Actions:   []Action{{Label: "Open devices", Kind: ActionLink, URL: "/admin/devices"}},
			CreatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID:        "a3",
			Audience:  AudienceAdmin,
			Topic:     "billing",
			Title:     "Payment failed",
			Message:   "Invoice for Acme Corp could not be collected.",
			Kind:      KindAlert,
			Priority:  PriorityUrgent,
			Actions: []Action{
				{Label: "Retry", Kind: ActionApprove},
				{Label: "Dismiss", Kind: ActionDismiss},
			},
			CreatedAt: now.Add(-3 * time.Hour),
		},
		{
			ID:        "a4",
			Audience:  AudienceAdmin,
			Topic:     "user",
			Title:     "Access request",
			Message:   "jane@acme.example requested a client dashboard seat.",
			Kind:      KindInfo,
			Priority:  PriorityMedium,
			Actions: []Action{
				{Label: "Approve", Kind: ActionApprove},
				{Label: "Deny", Kind: ActionDeny},
			},
			Read:      true,
			CreatedAt: now.Add(-26 * time.Hour),
		},
		{
			ID:        "a5",
			Audience:  AudienceAdmin,
			Topic:     "system",
			Title:     "Scheduled maintenance done",
			Message:   "The nightly archive job finished without errors.",
			Kind:      KindSuccess,
			Read:      true,
			CreatedAt: now.Add(-2 * 24 * time.Hour),
		},
	}
}

func clientSeed(now time.Time) []*Notification {
	return []*Notification{
		{
			ID:        "c1",
			Audience:  AudienceClient,
			Topic:     "device",
			Title:     "Workstation offline",
			Message:   "FRONT-DESK-01 lost its connection 5 minutes ago.",
			Kind:      KindAlert,
			Priority:  PriorityHigh,
			Icon:      "monitor-off",
			Actions:   []Action{{Label: "View device", Kind: ActionView, URL: "/devices/front-desk-01"}},
			CreatedAt: now.Add(-5 * time.Minute),
		},
		{
			ID:        "c2",
			Audience:  AudienceClient,
			Topic:     "billing",
			Title:     "Invoice paid",
			Message:   "Your July invoice was paid successfully.",
			Kind:      KindSuccess,
			Priority:  PriorityLow,
			Read:      true,
			CreatedAt: now.Add(-2 * time.Hour),
		},
		{
			ID:        "c3",
			Audience:  AudienceClient,
			Topic:     "subscription",
			Title:     "Plan renews soon",
			Message:   "Your Pro plan renews in 3 days.",
			Kind:      KindInfo,
			Priority:  PriorityMedium,
			Actions:   []Action{{Label: "Manage plan", Kind: ActionLink, URL: "/billing"}},
			CreatedAt: now.Add(-6 * time.Hour),
		},
		{
			ID:        "c4",
			Audience:  AudienceClient,
			Topic:     "device",
			Title:     "Remote session ended",
			Message:   "The support session on OFFICE-PC-07 has ended.",
			Kind:      KindInfo,
			Read:      true,
			CreatedAt: now.Add(-24 * time.Hour),
		},
		{
			ID:        "c5",
			Audience:  AudienceClient,
			Topic:     "security",
			Title:     "Password changed",
			Message:   "Your account password was changed.",
			Kind:      KindWarning,
			Priority:  PriorityMedium,
			Actions:   []Action{{Label: "Not me", Kind: ActionView, URL: "/account/security"}},
			CreatedAt: now.Add(-30 * time.Hour),
		},
		{
			ID:        "c6",
			Audience:  AudienceClient,
			Topic:     "marketing",
			Title:     "New feature: session recordings",
			Message:   "Replay remote sessions from the device page.",
			Kind:      KindInfo,
			Priority:  PriorityLow,
			Image:     "https://cdn.spear.example/announcements/recordings.png",
			Read:      true,
			CreatedAt: now.Add(-3 * 24 * time.Hour),
		},
	}
}
