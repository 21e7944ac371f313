// Package usecase defines the interfaces for the client's use cases.
package usecase

import "context"

// RegistrationOutcome describes what a reconciliation trigger did.
type RegistrationOutcome int

const (
	// OutcomeDeferred means the input was persisted but registration was
	// not attempted because the other half of the binding is still
	// unknown. This is an expected state, not an error: token issuance
	// and user input arrive independently, arbitrarily far apart.
	OutcomeDeferred RegistrationOutcome = iota
	// OutcomeRegistered means the complete binding was registered with
	// the backend.
	OutcomeRegistered
)

// BindingStatus reports which halves of the registration binding are
// currently persisted.
type BindingStatus struct {
	UserID      string
	DeviceToken string
}

// HasUserID reports whether a user ID has been set.
func (s BindingStatus) HasUserID() bool { return s.UserID != "" }

// HasDeviceToken reports whether a device token has been observed.
func (s BindingStatus) HasDeviceToken() bool { return s.DeviceToken != "" }

// Complete reports whether both halves are known.
func (s BindingStatus) Complete() bool { return s.HasUserID() && s.HasDeviceToken() }

// RegistrationUsecase owns the invariant "the locally known
// (userId, deviceToken) pair is registered with the backend". Either half
// may arrive first; each arrival persists immediately and triggers a
// reconciliation that registers only once both halves are known.
type RegistrationUsecase interface {
	// OnUserIDSet persists the user-supplied ID, then reconciles.
	// A registration failure leaves the persisted ID in place.
	OnUserIDSet(ctx context.Context, userID string) (RegistrationOutcome, error)

	// OnTokenAvailable persists the OS-issued device token, then
	// reconciles. A registration failure leaves the persisted token in
	// place.
	OnTokenAvailable(ctx context.Context, deviceToken string) (RegistrationOutcome, error)

	// Reregister re-runs registration from persisted state. Unlike the
	// event entry points, an incomplete binding here is an error
	// (ErrBindingIncomplete): the caller explicitly asked for a
	// registration that cannot happen.
	Reregister(ctx context.Context) error

	// Status reports which halves of the binding are persisted.
	Status(ctx context.Context) (BindingStatus, error)
}
