package chain

import (
	"context"
	"fmt"
	"sync"

	"luminafi/pkg/logger"
)

// TxOutcome is the non-throwing result of a write submission. A failed call
// surfaces as a message string in Err; callers display it and let the user
// resubmit. There is no automatic retry.
type TxOutcome struct {
	Hash    string `json:"hash,omitempty"`
	Err     string `json:"error,omitempty"`
	Success bool   `json:"success"`
}

// Writer submits state-changing contract calls. At most one submission may be
// in flight per Writer instance; a concurrent attempt is rejected instead of
// queued, mirroring a submit control disabled while pending.
type Writer struct {
	client   *Client
	contract string
	token    string
	from     string
	gasLimit uint64
	mu       sync.Mutex
	inFlight bool
}

func NewWriter(client *Client, contractAddr, tokenAddr, fromAddr string, gasLimit uint64) (*Writer, error) {
	if !IsAddress(contractAddr) {
		return nil, fmt.Errorf("invalid LUMINAFI_CONTRACT_ADDRESS")
	}
	if !IsAddress(tokenAddr) {
		return nil, fmt.Errorf("invalid LUMINA_TOKEN_ADDRESS")
	}
	if !IsAddress(fromAddr) {
		return nil, fmt.Errorf("invalid CHAIN_FROM_ADDRESS")
	}
	if gasLimit == 0 {
		gasLimit = 300000
	}
	return &Writer{
		client:   client,
		contract: contractAddr,
		token:    tokenAddr,
		from:     fromAddr,
		gasLimit: gasLimit,
	}, nil
}

func (w *Writer) RegisterAsBorrower(ctx context.Context, name, institution string) TxOutcome {
	if name == "" || institution == "" {
		return failure("registerAsBorrower", w.from, fmt.Errorf("name and institution are required"))
	}
	return w.submit(ctx, w.contract, "registerAsBorrower(string,string)", Str(name), Str(institution))
}

func (w *Writer) RegisterAsInvestor(ctx context.Context, name, institution string) TxOutcome {
	if name == "" || institution == "" {
		return failure("registerAsInvestor", w.from, fmt.Errorf("name and institution are required"))
	}
	return w.submit(ctx, w.contract, "registerAsInvestor(string,string)", Str(name), Str(institution))
}

// InvestInLuminaFi takes a human-unit token amount and converts it to the
// 18-decimal base units the contract expects.
func (w *Writer) InvestInLuminaFi(ctx context.Context, amount string) TxOutcome {
	base, err := ParseTokenAmount(amount)
	if err != nil {
		return failure("investInLuminaFi", w.from, err)
	}
	return w.submit(ctx, w.contract, "investInLuminaFi(uint256)", Uint256(base))
}

func (w *Writer) WithdrawInvestment(ctx context.Context, amount string) TxOutcome {
	base, err := ParseTokenAmount(amount)
	if err != nil {
		return failure("withdrawInvestment", w.from, err)
	}
	return w.submit(ctx, w.contract, "withdrawInvestment(uint256)", Uint256(base))
}

// RequestLoan takes the amount in human stable-coin units, the term in years
// and the profit share in basis points. Amount is scaled to 6 decimals and
// the term to months before submission.
func (w *Writer) RequestLoan(ctx context.Context, amount string, termYears int, profitShareBps uint64, reason, documentsHash string) TxOutcome {
	base, err := ParseStableAmount(amount)
	if err != nil {
		return failure("requestLoan", w.from, err)
	}
	months, err := YearsToMonths(termYears)
	if err != nil {
		return failure("requestLoan", w.from, err)
	}
	if profitShareBps > MaxBps {
		return failure("requestLoan", w.from, fmt.Errorf("profit share exceeds 100%%"))
	}
	return w.submit(ctx, w.contract, "requestLoan(uint256,uint256,uint256,string,string)",
		Uint256(base), Uint64Arg(months), Uint64Arg(profitShareBps), Str(reason), Str(documentsHash))
}

func (w *Writer) VoteForLoan(ctx context.Context, loanID uint64) TxOutcome {
	return w.submit(ctx, w.contract, "voteForLoan(uint256)", Uint64Arg(loanID))
}

func (w *Writer) MakePayment(ctx context.Context, loanID uint64, amount string) TxOutcome {
	base, err := ParseStableAmount(amount)
	if err != nil {
		return failure("makePayment", w.from, err)
	}
	return w.submit(ctx, w.contract, "makePayment(uint256,uint256)", Uint64Arg(loanID), Uint256(base))
}

func (w *Writer) DefaultLoan(ctx context.Context, loanID uint64) TxOutcome {
	return w.submit(ctx, w.contract, "defaultLoan(uint256)", Uint64Arg(loanID))
}

func (w *Writer) AddCredential(ctx context.Context, credentialHash string) TxOutcome {
	if credentialHash == "" {
		return failure("addCredential", w.from, fmt.Errorf("credential hash is required"))
	}
	return w.submit(ctx, w.contract, "addCredential(string)", Str(credentialHash))
}

func (w *Writer) VerifyCredential(ctx context.Context, userAddr string, index uint64) TxOutcome {
	return w.submit(ctx, w.contract, "verifyCredential(address,uint256)", Address(userAddr), Uint64Arg(index))
}

// ApproveSpend approves the lending contract to move the caller's investment
// tokens. This is the one write that targets the token contract.
func (w *Writer) ApproveSpend(ctx context.Context, amount string) TxOutcome {
	base, err := ParseTokenAmount(amount)
	if err != nil {
		return failure("approve", w.from, err)
	}
	return w.submit(ctx, w.token, "approve(address,uint256)", Address(w.contract), Uint256(base))
}

func (w *Writer) submit(ctx context.Context, to, signature string, args ...Arg) TxOutcome {
	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		return TxOutcome{Err: "a transaction is already pending, wait for it to finish"}
	}
	w.inFlight = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.inFlight = false
		w.mu.Unlock()
	}()

	data, err := EncodeCall(signature, args...)
	if err != nil {
		return failure(signature, w.from, err)
	}

	hash, err := w.client.SendTransaction(ctx, w.from, to, w.gasLimit, data)
	if err != nil {
		return failure(signature, w.from, err)
	}
	return TxOutcome{Hash: hash, Success: true}
}

func failure(action, wallet string, err error) TxOutcome {
	logger.LogChainError(action, wallet, err)
	return TxOutcome{Err: err.Error()}
}
