package domain

// MaxFeeBps is the upper bound for the platform fee fraction (100%).
const MaxFeeBps = 10000

// PlatformConfig holds the owner-gated fee policy. The owner address is
// fixed at initialization.
type PlatformConfig struct {
	OwnerAddress string
	FeeBps       int64 // 0..MaxFeeBps inclusive
}

// SplitFare splits a fare into the platform fee and the driver payment for
// the given fee fraction. The two parts always sum exactly to fare.
// The fee is computed in two terms so fare*feeBps never has to fit in an
// int64; the result equals floor(fare*feeBps/10000) for the full int64
// fare range.
func SplitFare(fare, feeBps int64) (platformFee, driverPayment int64) {
	platformFee = fare/MaxFeeBps*feeBps + fare%MaxFeeBps*feeBps/MaxFeeBps
	return platformFee, fare - platformFee
}

// Balance is an address's accumulated withdrawable credit.
type Balance struct {
	Address string
	Amount  int64
}
