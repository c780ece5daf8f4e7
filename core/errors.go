package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100100
	// ErrVaultLocked deposits out of sync with the pool's compounded balance
	ErrVaultLocked ErrorCode = 100101
	// ErrAccountNotFound no account
	ErrAccountNotFound ErrorCode = 100102
	// ErrInsufficientShares share balance too low
	ErrInsufficientShares ErrorCode = 100103

	// ErrFetchTooSoon refresh already ran this calendar week
	ErrFetchTooSoon ErrorCode = 100200
	// ErrDelegateHasCallback extra delegate has a forwarding callback
	ErrDelegateHasCallback ErrorCode = 100201
	// ErrClaimNotApproved caller lacks the claim-on-behalf approval
	ErrClaimNotApproved ErrorCode = 100202

	// ErrNothingToAuction backing already reconciled
	ErrNothingToAuction ErrorCode = 100300
	// ErrInvalidCurveParams curve parameters out of allowed ordering
	ErrInvalidCurveParams ErrorCode = 100301
	// ErrCollateralNotFound unsupported collateral
	ErrCollateralNotFound ErrorCode = 100302
	// ErrInvalidPrice invalid or unverifiable price
	ErrInvalidPrice ErrorCode = 100303

	// ErrLockerNotFound no locker at index
	ErrLockerNotFound ErrorCode = 100400
	// ErrLastActiveLocker disabling the last mint-active locker
	ErrLastActiveLocker ErrorCode = 100401
	// ErrMintNotFunded locker token balance below tracked + mint amount
	ErrMintNotFunded ErrorCode = 100402
	// ErrInsufficientBasket basket balance too low to redeem
	ErrInsufficientBasket ErrorCode = 100403

	// ErrRewardTokenNotFound unsupported reward token
	ErrRewardTokenNotFound ErrorCode = 100500
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
