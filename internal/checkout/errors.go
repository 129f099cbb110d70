package checkout

import "errors"

var (
	ErrNotLoggedIn       = errors.New("checkout requires an active session")
	ErrEmptyCart         = errors.New("cart is empty, nothing to checkout")
	ErrNoShippingAddress = errors.New("shipping address is required")
	ErrCheckoutInFlight  = errors.New("another checkout is already in flight")
	ErrNoPendingPayment  = errors.New("no payment is awaiting submission")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrPaymentDeclined   = errors.New("payment was declined")

	IllegalTransitionError = errors.New("illegal transition of checkout status")
)

// IsValidationFailure reports whether err is a client-side precondition
// failure: no network call was made and no state changed.
func IsValidationFailure(err error) bool {
	for _, sentinel := range []error{
		ErrNotLoggedIn, ErrEmptyCart, ErrNoShippingAddress,
		ErrCheckoutInFlight, ErrNoPendingPayment, ErrUnsupportedMethod,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
