package notify

import "context"

// Notifier is the native OS notification boundary. An implementation is
// supplied by whatever shell embeds the poller (a desktop companion, a
// test fake); the hosted service runs headless with none configured.
// Permission is asked before every show so a revoked grant downgrades
// to the in-app history record instead of erroring.
type Notifier interface {
	RequestPermission(ctx context.Context) (bool, error)
	Show(title, body string) error
}
