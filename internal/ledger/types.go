package ledger

type BalanceOfInput struct {
	Asset  string
	Holder string
}

type TransferInput struct {
	Asset  string
	From   string
	To     string
	Amount uint64
}

type MintInput struct {
	Asset  string
	Holder string
	Amount uint64
}
