package checkout

// Status is the checkout attempt state. Editing is the only state accepting a
// new submission; everything between Validating and a terminal outcome keeps
// the submit affordance disabled.
type Status string

const (
	StatusEditing                     Status = "EDITING"
	StatusValidating                  Status = "VALIDATING"
	StatusAwaitingPaymentIntent       Status = "AWAITING_PAYMENT_INTENT"
	StatusAwaitingPaymentConfirmation Status = "AWAITING_PAYMENT_CONFIRMATION"
	StatusPlacingOrder                Status = "PLACING_ORDER"
	StatusCompleted                   Status = "COMPLETED"
	StatusError                       Status = "ERROR"
)

var validNext = map[Status]map[Status]bool{
	StatusEditing:                     {StatusValidating: true},
	StatusValidating:                  {StatusAwaitingPaymentIntent: true, StatusEditing: true, StatusError: true},
	StatusAwaitingPaymentIntent:       {StatusAwaitingPaymentConfirmation: true, StatusError: true},
	StatusAwaitingPaymentConfirmation: {StatusPlacingOrder: true, StatusError: true},
	StatusPlacingOrder:                {StatusCompleted: true, StatusError: true},
	StatusCompleted:                   {StatusEditing: true},
	StatusError:                       {StatusEditing: true},
}

func CanTransitionTo(from, to Status) bool {
	return validNext[from][to]
}

// InFlight reports whether a submission attempt is currently running.
func (s Status) InFlight() bool {
	return s != StatusEditing
}

func (s Status) String() string {
	return string(s)
}
