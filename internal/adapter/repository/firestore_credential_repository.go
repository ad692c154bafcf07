package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"luminafi/internal/domain/entity"
	"luminafi/internal/domain/repository"
)

type firestoreCredentialRepository struct {
	client *firestore.Client
}

func NewFirestoreCredentialRepository(client *firestore.Client) repository.CredentialRepository {
	return &firestoreCredentialRepository{
		client: client,
	}
}

func (r *firestoreCredentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	_, err := r.client.Collection("credentials").Doc(credential.ID).Set(ctx, credential)
	return err
}

func (r *firestoreCredentialRepository) GetByID(ctx context.Context, id string) (*entity.Credential, error) {
	doc, err := r.client.Collection("credentials").Doc(id).Get(ctx)
	if err != nil {
		return nil, err
	}

	var credential entity.Credential
	if err := doc.DataTo(&credential); err != nil {
		return nil, err
	}

	return &credential, nil
}

func (r *firestoreCredentialRepository) ListByLender(ctx context.Context, lenderID string) ([]entity.Credential, error) {
	query := r.client.Collection("credentials").Where("lenderId", "==", lenderID)
	iter := query.Documents(ctx)
	var credentials []entity.Credential

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var credential entity.Credential
		if err := doc.DataTo(&credential); err != nil {
			return nil, err
		}
		credentials = append(credentials, credential)
	}

	return credentials, nil
}

func (r *firestoreCredentialRepository) Update(ctx context.Context, credential *entity.Credential) error {
	_, err := r.client.Collection("credentials").Doc(credential.ID).Set(ctx, credential)
	return err
}
