package services

// EventPublisher publishes catalog change events. Publishing is
// fire-and-forget: services log failures and never fail the request over
// them. A nil publisher disables eventing.
type EventPublisher interface {
	PublishEvent(event string, payload interface{}) error
}
