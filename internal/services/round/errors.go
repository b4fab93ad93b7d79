package round

// RoundError is a custom error type for round-related errors
type RoundError string

// Error implements the error interface
func (e RoundError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUnauthorized        RoundError = "caller is not the operator"
	ErrRoundAlreadyOpen    RoundError = "a round is already open"
	ErrRoundNotOpen        RoundError = "no round is open"
	ErrTooEarly            RoundError = "ledger height is below the required height"
	ErrTooLate             RoundError = "ledger height has already reached the close height"
	ErrBettingClosed       RoundError = "betting has closed for this round"
	ErrCapacityExceeded    RoundError = "round is at maximum capacity"
	ErrInvalidGuess        RoundError = "guess must be between 1 and 6"
	ErrInvalidAmount       RoundError = "wager amount must be greater than zero"
	ErrInvalidRound        RoundError = "invalid round parameters"
	ErrInvalidParticipant  RoundError = "participant must be set and cannot be a house account"
	ErrAlreadyEntered      RoundError = "participant already has a wager this round"
	ErrWagerNotFound       RoundError = "participant has no wager this round"
	ErrInsufficientBalance RoundError = "insufficient balance"
	ErrTransferFailed      RoundError = "ledger transfer failed"
	ErrCommitmentMismatch  RoundError = "revealed secret does not match commitment"
	ErrNilConfig           RoundError = "config cannot be nil"
	ErrNilRoundRepo        RoundError = "round repository cannot be nil"
	ErrNilPayoutRepo       RoundError = "payout repository cannot be nil"
	ErrNilLedger           RoundError = "ledger cannot be nil"
	ErrNilHeightSource     RoundError = "height source cannot be nil"
	ErrNilEntropySource    RoundError = "entropy source cannot be nil"
	ErrNilClock            RoundError = "clock cannot be nil"
	ErrNilUUIDGenerator    RoundError = "UUID generator cannot be nil"
	ErrMissingAccount      RoundError = "operator, fee collector, pool account and access asset must be set"
	ErrInvalidMaxEntries   RoundError = "max entries cannot exceed 250"
	ErrMissingEntropy      RoundError = "entropy source returned no value"
)
