package entity

// LoanStatus is the closed status enum defined by the LuminaFi contract.
// This service only displays and filters it.
type LoanStatus uint8

const (
	LoanPending LoanStatus = iota
	LoanApproved
	LoanFunded
	LoanActive
	LoanCompleted
	LoanDefaulted
)

var loanStatusNames = map[LoanStatus]string{
	LoanPending:   "Pending",
	LoanApproved:  "Approved",
	LoanFunded:    "Funded",
	LoanActive:    "Active",
	LoanCompleted: "Completed",
	LoanDefaulted: "Defaulted",
}

func (s LoanStatus) String() string {
	if name, ok := loanStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s LoanStatus) Valid() bool {
	_, ok := loanStatusNames[s]
	return ok
}

// ParseLoanStatus maps a display name back to the contract enum value.
func ParseLoanStatus(name string) (LoanStatus, bool) {
	for status, statusName := range loanStatusNames {
		if statusName == name {
			return status, true
		}
	}
	return 0, false
}

// LoanSummary is the typed projection of the contract's getLoanSummary view.
// Amounts are in stable-coin base units (6 decimals) as returned on-chain;
// handlers convert to human units at the edge.
type LoanSummary struct {
	ID               uint64     `json:"id"`
	Borrower         string     `json:"borrower"`
	AmountStablecoin string     `json:"amount_stablecoin"`
	TermMonths       uint64     `json:"term_months"`
	ProfitShareBps   uint64     `json:"profit_share_bps"`
	Status           LoanStatus `json:"status"`
	StatusName       string     `json:"status_name"`
	Votes            uint64     `json:"votes"`
	TotalVoters      uint64     `json:"total_voters"`
	PaidAmount       string     `json:"paid_amount"`
	NextPaymentDue   uint64     `json:"next_payment_due"`
}
