// Package subscription gates subscription-only operations behind a
// per-tenant trial or paid entitlement.
package subscription

import "errors"

// Domain errors for the subscription module.
var (
	ErrSubscriptionNotFound   = errors.New("subscription not found")
	ErrTrialAlreadyStarted    = errors.New("a trial has already been started for this tenant")
)
