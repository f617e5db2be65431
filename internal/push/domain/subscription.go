package domain

// SubscriptionKeys are the browser-generated encryption keys of a push
// subscription.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh,omitempty"`
	Auth   string `json:"auth,omitempty"`
}

// PushSubscription is the opaque subscription JSON produced by the
// browser's PushManager. Only the endpoint is required here; the rest is
// passed through to the push transport.
type PushSubscription struct {
	Endpoint       string            `json:"endpoint"`
	ExpirationTime *float64          `json:"expirationTime,omitempty"`
	Keys           *SubscriptionKeys `json:"keys,omitempty"`
}

// SubscriptionRecord is one device's stored subscription within a channel.
// Records are keyed by endpoint, but a device is logically identified by
// DeviceID: browsers may mint a new endpoint on resubscribe, so at most one
// record per device may be effective (latest UpdatedAt wins).
type SubscriptionRecord struct {
	Endpoint     string           `json:"endpoint"`
	DeviceID     string           `json:"deviceId"`
	Locale       string           `json:"locale"`
	UpdatedAt    string           `json:"updatedAt"`
	Subscription PushSubscription `json:"subscription"`
}

// Valid reports whether a stored record has all the fields delivery needs.
// List drops invalid records instead of failing the whole read.
func (r *SubscriptionRecord) Valid() bool {
	return r.Endpoint != "" &&
		r.DeviceID != "" &&
		r.Locale != "" &&
		r.UpdatedAt != "" &&
		r.Subscription.Endpoint != ""
}
