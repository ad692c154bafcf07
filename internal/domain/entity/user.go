package entity

import (
	"time"
)

const (
	RoleLender   = "lender"
	RoleInvestor = "investor"
	RoleAdmin    = "admin"
)

const (
	LenderStatusProposed = "proposed"
	LenderStatusAccepted = "accepted"
	LenderStatusRejected = "rejected"
)

type User struct {
	ID            string `json:"id" firestore:"id"`
	UserID        string `json:"user_id" firestore:"userId"`
	UserName      string `json:"user_name" firestore:"userName"`
	WalletAddress string `json:"wallet_address" firestore:"walletAddress"`
	FullName      string `json:"full_name" firestore:"fullName"`
	Role          string `json:"role" firestore:"role"`
	RoleID        string `json:"role_id,omitempty" firestore:"roleId,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Lender is the document-side projection of a borrower applicant. The
// contract calls this participant a borrower; the document model keeps the
// historical "lender" collection name.
type Lender struct {
	ID              string   `json:"id" firestore:"id"`
	Status          string   `json:"status" firestore:"status"`
	Amount          float64  `json:"amount" firestore:"amount"`
	InstitutionName string   `json:"institution_name" firestore:"institutionName"`
	TranscriptURL   string   `json:"transcript_url,omitempty" firestore:"transcriptUrl,omitempty"`
	EssayURL        string   `json:"essay_url,omitempty" firestore:"essayUrl,omitempty"`
	CredentialIDs   []string `json:"credential_ids,omitempty" firestore:"credentialIds,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

type Credential struct {
	ID       string `json:"id" firestore:"id"`
	LenderID string `json:"lender_id" firestore:"lenderId"`
	Type     string `json:"type" firestore:"type"`
	URL      string `json:"url" firestore:"url"`
	Hash     string `json:"hash,omitempty" firestore:"hash,omitempty"`
	Verified bool   `json:"verified" firestore:"verified"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// LoanRecord mirrors a loan application on the document side. The source of
// truth for loan state is the contract; this record only links uploads and
// the requesting user for the dashboard joins.
type LoanRecord struct {
	ID         string  `json:"id" firestore:"id"`
	LenderID   string  `json:"lender_id" firestore:"lenderId"`
	Amount     float64 `json:"amount" firestore:"amount"`
	TermMonths int     `json:"term_months" firestore:"termMonths"`
	Reason     string  `json:"reason,omitempty" firestore:"reason,omitempty"`
	TxHash     string  `json:"tx_hash,omitempty" firestore:"txHash,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

// UserAggregate is the joined shape served by GET /api/user/:id.
type UserAggregate struct {
	User        *User        `json:"user"`
	RoleData    *Lender      `json:"role_data,omitempty"`
	Credentials []Credential `json:"credentials,omitempty"`
	Loans       []LoanRecord `json:"loans,omitempty"`
}
