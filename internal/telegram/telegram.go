package telegram

// Client delivers operator alerts.
//
//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	// SendMessageToUser sends text to the configured operator. Delivery
	// failures are logged, never returned.
	SendMessageToUser(message string)
}
