package entity

// DeviceRegistration is the (user, device token) binding sent to the
// notification backend. It is recomputed from the local state store on every
// reconciliation trigger and never stored as its own record.
type DeviceRegistration struct {
	UserID      string `json:"user_id"`
	DeviceToken string `json:"device_token"`
}

// Complete reports whether both halves of the binding are known. Only a
// complete binding may be registered with the backend.
func (r DeviceRegistration) Complete() bool {
	return r.UserID != "" && r.DeviceToken != ""
}
