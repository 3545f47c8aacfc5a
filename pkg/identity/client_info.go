package identity

import "context"

// ClientInfo carries the network provenance of the request driving a lifecycle
// operation. It ends up on audit entries for security forensics.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

type contextKey string

const clientInfoKey contextKey = "client_info"

// WithClientInfo attaches client provenance to the context.
func WithClientInfo(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientInfoKey, info)
}

// ClientInfoFrom extracts client provenance from the context, if present.
func ClientInfoFrom(ctx context.Context) ClientInfo {
	info, _ := ctx.Value(clientInfoKey).(ClientInfo)

	return info
}
