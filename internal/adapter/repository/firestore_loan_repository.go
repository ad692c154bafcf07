package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"luminafi/internal/domain/entity"
	"luminafi/internal/domain/repository"
)

type firestoreLoanRecordRepository struct {
	client *firestore.Client
}

func NewFirestoreLoanRecordRepository(client *firestore.Client) repository.LoanRecordRepository {
	return &firestoreLoanRecordRepository{
		client: client,
	}
}

func (r *firestoreLoanRecordRepository) Create(ctx context.Context, loan *entity.LoanRecord) error {
	_, err := r.client.Collection("loans").Doc(loan.ID).Set(ctx, loan)
	return err
}

func (r *firestoreLoanRecordRepository) ListByLender(ctx context.Context, lenderID string) ([]entity.LoanRecord, error) {
	query := r.client.Collection("loans").Where("lenderId", "==", lenderID)
	iter := query.Documents(ctx)
	var loans []entity.LoanRecord

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var loan entity.LoanRecord
		if err := doc.DataTo(&loan); err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}

	return loans, nil
}
