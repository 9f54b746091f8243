package service

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEventInPast      = errors.New("event has already occurred")
	ErrNoTiers          = errors.New("no ticket tiers found for this event")
	ErrNoCustomerRef    = errors.New("customer_id or customer_email is required")
)
