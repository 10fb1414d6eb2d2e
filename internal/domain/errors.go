package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Scoring errors
	ErrUnknownLevel = errors.New("unknown behavior level")

	// Configuration errors — fatal at startup, never silently tolerated
	ErrInvalidConfig = errors.New("invalid configuration")

	// Wish errors
	ErrWishNotFound      = errors.New("wish not found")
	ErrWishRedeemed      = errors.New("wish already redeemed")
	ErrWishArchived      = errors.New("wish archived")
	ErrInsufficientScore = errors.New("insufficient score to redeem wish")
	ErrWishCostTooLow    = errors.New("wish cost below minimum")
)
