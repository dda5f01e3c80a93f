package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storekit/catalog-api/internal/core/domain"
)

const (
	rolesCollection     = "roles"
	userRolesCollection = "user_roles"
)

// RoleRepository resolves role assignments through the user_roles join
// collection, keeping the user document free of authorization state.
type RoleRepository struct {
	roles     *mongo.Collection
	userRoles *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		roles:     db.Collection(rolesCollection),
		userRoles: db.Collection(userRolesCollection),
	}
}

type roleDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	RoleName string             `bson:"role_name"`
}

type userRoleDoc struct {
	UserID string             `bson:"user_id"`
	RoleID primitive.ObjectID `bson:"role_id"`
}

// Seed upserts the fixed role set. Safe to run on every startup.
func (r *RoleRepository) Seed(ctx context.Context) error {
	for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
		_, err := r.roles.UpdateOne(ctx,
			bson.M{"role_name": name},
			bson.M{"$setOnInsert": bson.M{"role_name": name}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed role %q: %w", name, err)
		}
	}
	return nil
}

func (r *RoleRepository) RoleNamesForUser(ctx context.Context, userID string) ([]string, error) {
	cur, err := r.userRoles.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("find user roles: %w", err)
	}
	defer cur.Close(ctx)

	var roleIDs []primitive.ObjectID
	for cur.Next(ctx) {
		var doc userRoleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user role: %w", err)
		}
		roleIDs = append(roleIDs, doc.RoleID)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if len(roleIDs) == 0 {
		return nil, nil
	}

	return r.namesByIDs(ctx, roleIDs)
}

func (r *RoleRepository) RoleNamesByUser(ctx context.Context) (map[string][]string, error) {
	names, err := r.allRoleNames(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := r.userRoles.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find user roles: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string][]string)
	for cur.Next(ctx) {
		var doc userRoleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user role: %w", err)
		}
		if name, ok := names[doc.RoleID]; ok {
			out[doc.UserID] = append(out[doc.UserID], name)
		}
	}
	return out, cur.Err()
}

func (r *RoleRepository) Assign(ctx context.Context, userID, roleName string) error {
	var role roleDoc
	if err := r.roles.FindOne(ctx, bson.M{"role_name": roleName}).Decode(&role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("assign role: unknown role %q", roleName)
		}
		return fmt.Errorf("assign role: %w", err)
	}

	_, err := r.userRoles.UpdateOne(ctx,
		bson.M{"user_id": userID, "role_id": role.ID},
		bson.M{"$setOnInsert": bson.M{"user_id": userID, "role_id": role.ID}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *RoleRepository) namesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]string, error) {
	cur, err := r.roles.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cur.Close(ctx)

	var names []string
	for cur.Next(ctx) {
		var doc roleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		names = append(names, doc.RoleName)
	}
	return names, cur.Err()
}

func (r *RoleRepository) allRoleNames(ctx context.Context) (map[primitive.ObjectID]string, error) {
	cur, err := r.roles.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cur.Close(ctx)

	names := make(map[primitive.ObjectID]string)
	for cur.Next(ctx) {
		var doc roleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		names[doc.ID] = doc.RoleName
	}
	return names, cur.Err()
}
