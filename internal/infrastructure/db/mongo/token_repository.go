package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storekit/catalog-api/internal/core/domain"
)

const tokensCollection = "access_tokens"

// TokenRepository stores the allowlist records behind issued bearer tokens,
// keyed by the token id (the JWT's jti claim).
type TokenRepository struct {
	coll *mongo.Collection
}

func NewTokenRepository(db *mongo.Database) *TokenRepository {
	return &TokenRepository{coll: db.Collection(tokensCollection)}
}

type tokenDoc struct {
	ID        string   `bson:"_id"`
	UserID    string   `bson:"user_id"`
	Name      string   `bson:"name"`
	Abilities []string `bson:"abilities"`
	CreatedAt int64    `bson:"created_at"`
}

func (r *TokenRepository) Create(ctx context.Context, token *domain.AccessToken) error {
	doc := tokenDoc{
		ID:        token.ID,
		UserID:    token.UserID,
		Name:      token.Name,
		Abilities: token.Abilities,
		CreatedAt: token.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	return nil
}

func (r *TokenRepository) Find(ctx context.Context, id string) (*domain.AccessToken, error) {
	var doc tokenDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTokenRevoked
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &domain.AccessToken{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Name:      doc.Name,
		Abilities: doc.Abilities,
		CreatedAt: unixToTime(doc.CreatedAt),
	}, nil
}

func (r *TokenRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}
