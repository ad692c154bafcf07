package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"luminafi/internal/domain/entity"
	"luminafi/internal/domain/repository"
)

type firestoreLenderRepository struct {
	client *firestore.Client
}

func NewFirestoreLenderRepository(client *firestore.Client) repository.LenderRepository {
	return &firestoreLenderRepository{
		client: client,
	}
}

func (r *firestoreLenderRepository) Create(ctx context.Context, lender *entity.Lender) error {
	_, err := r.client.Collection("lenders").Doc(lender.ID).Set(ctx, lender)
	return err
}

func (r *firestoreLenderRepository) GetByID(ctx context.Context, id string) (*entity.Lender, error) {
	doc, err := r.client.Collection("lenders").Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}

	var lender entity.Lender
	if err := doc.DataTo(&lender); err != nil {
		return nil, err
	}

	return &lender, nil
}

func (r *firestoreLenderRepository) Update(ctx context.Context, lender *entity.Lender) error {
	_, err := r.client.Collection("lenders").Doc(lender.ID).Set(ctx, lender)
	return err
}

func (r *firestoreLenderRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("lenders").Doc(id).Delete(ctx)
	return err
}
