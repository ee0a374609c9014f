package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/accounts/internal/accounts/domain"
	"github.com/aussiebroadwan/accounts/internal/accounts/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// accountDoc is the stored shape. Field names follow the documents written
// by earlier versions of the service.
type accountDoc struct {
	ID             string     `bson:"_id"`
	Name           string     `bson:"name"`
	Email          string     `bson:"email"`
	Salt           string     `bson:"salt"`
	HashedPassword string     `bson:"hashed_password"`
	Created        time.Time  `bson:"created"`
	Updated        *time.Time `bson:"updated,omitempty"`
}

func toDoc(a domain.Account) accountDoc {
	return accountDoc{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Salt:           a.Salt,
		HashedPassword: a.PasswordHash,
		Created:        a.CreatedAt,
		Updated:        a.UpdatedAt,
	}
}

func (d accountDoc) toDomain() domain.Account {
	a := domain.Account{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Salt:         d.Salt,
		PasswordHash: d.HashedPassword,
		CreatedAt:    d.Created.UTC(),
	}
	if d.Updated != nil {
		u := d.Updated.UTC()
		a.UpdatedAt = &u
	}
	return a
}

type accountsRepo struct {
	coll *mongo.Collection
}

func (r *accountsRepo) findOne(ctx context.Context, filter bson.D) (domain.Account, error) {
	var doc accountDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *accountsRepo) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	var docs []accountDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.coll.InsertOne(ctx, toDoc(a))
	return mapDuplicate(err)
}

func (r *accountsRepo) UpdateAccount(ctx context.Context, a domain.Account) error {
	set := bson.D{
		{Key: "name", Value: a.Name},
		{Key: "email", Value: a.Email},
		{Key: "salt", Value: a.Salt},
		{Key: "hashed_password", Value: a.PasswordHash},
	}
	if a.UpdatedAt != nil {
		set = append(set, bson.E{Key: "updated", Value: *a.UpdatedAt})
	}

	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: a.ID}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return mapDuplicate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
