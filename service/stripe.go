package service

// StripeEvent is the slice of a payment webhook payload this system
// reads. Accessors fail soft: missing or short paths come back as
// empty/zero, never as an error.
type StripeEvent struct {
	Type    string     `json:"type"`
	Created int64      `json:"created"`
	Data    StripeData `json:"data"`
}

type StripeData struct {
	Object StripeObject `json:"object"`
}

type StripeObject struct {
	Status  string        `json:"status"`
	Charges StripeCharges `json:"charges"`
}

type StripeCharges struct {
	Data []StripeCharge `json:"data"`
}

type StripeCharge struct {
	Status         string         `json:"status"`
	BillingDetails BillingDetails `json:"billing_details"`
}

type BillingDetails struct {
	Email string `json:"email"`
}

// BillingEmail returns data.object.charges.data[0].billing_details.email,
// or "" when any step of the path is absent.
func (e *StripeEvent) BillingEmail() string {
	if len(e.Data.Object.Charges.Data) == 0 {
		return ""
	}
	return e.Data.Object.Charges.Data[0].BillingDetails.Email
}

// ChargeStatus returns the first charge's status, or the object status
// when no charge is present.
func (e *StripeEvent) ChargeStatus() string {
	if len(e.Data.Object.Charges.Data) > 0 && e.Data.Object.Charges.Data[0].Status != "" {
		return e.Data.Object.Charges.Data[0].Status
	}
	return e.Data.Object.Status
}

// PaidTimestamp returns the top-level created timestamp, zero when absent.
func (e *StripeEvent) PaidTimestamp() int64 {
	return e.Created
}

// Succeeded reports whether the event carries a successful charge.
// Failed charges and refunds must never activate a plan.
func (e *StripeEvent) Succeeded() bool {
	return e.ChargeStatus() == "succeeded"
}
