package notification

// Factory helpers used by webhook handlers, scheduler jobs and assistant
// tools. They only stamp the audience; the store still owns validation
// and id assignment.

// NewAdminNotification builds an admin-feed input.
func NewAdminNotification(topic, title, message string, kind Kind) Input {
	return Input{
		Audience: AudienceAdmin,
		Topic:    topic,
		Title:    title,
		Message:  message,
		Kind:     kind,
	}
}

// NewClientNotification builds a client-feed input.
func NewClientNotification(topic, title, message string, kind Kind) Input {
	return Input{
		Audience: AudienceClient,
		Topic:    topic,
		Title:    title,
		Message:  message,
		Kind:     kind,
	}
}

// WithPriority returns a copy of the input with the priority set.
func (in Input) WithPriority(p Priority) Input {
	in.Priority = p
	return in
}

// WithActions returns a copy of the input with the action list set.
func (in Input) WithActions(actions ...Action) Input {
	in.Actions = actions
	return in
}
