package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petpulse/internal/domain/pets"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	petsCollection     = "pets"
	countersCollection = "counters"
	petsCounterKey     = "pets"
)

type petDoc struct {
	ID        int64     `bson:"_id"`
	Name      string    `bson:"name"`
	Species   string    `bson:"species"`
	Age       int       `bson:"age"`
	OwnerName string    `bson:"owner_name"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

func toDoc(p pets.Pet) petDoc {
	return petDoc{
		ID:        p.ID,
		Name:      p.Name,
		Species:   p.Species,
		Age:       p.Age,
		OwnerName: p.OwnerName,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

func (d petDoc) toPet() pets.Pet {
	return pets.Pet{
		ID:        d.ID,
		Name:      d.Name,
		Species:   d.Species,
		Age:       d.Age,
		OwnerName: d.OwnerName,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type PetsRepo struct {
	pets     *mongo.Collection
	counters *mongo.Collection
}

func NewPetsRepo(db *mongo.Database) *PetsRepo {
	return &PetsRepo{
		pets:     db.Collection(petsCollection),
		counters: db.Collection(countersCollection),
	}
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	cur, err := r.pets.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: list pets: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]pets.Pet, 0)
	for cur.Next(ctx) {
		var d petDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("mongo: decode pet: %w", err)
		}
		out = append(out, d.toPet())
	}
	return out, cur.Err()
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	var d petDoc
	err := r.pets.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("mongo: get pet %d: %w", id, err)
	}
	return d.toPet(), nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return pets.Pet{}, err
	}
	p.ID = id

	if _, err := r.pets.InsertOne(ctx, toDoc(p)); err != nil {
		return pets.Pet{}, fmt.Errorf("mongo: insert pet: %w", err)
	}
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.pets.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"name":       p.Name,
		"species":    p.Species,
		"age":        p.Age,
		"owner_name": p.OwnerName,
		"updated_at": p.UpdatedAt.UTC(),
	}})
	if err != nil {
		return fmt.Errorf("mongo: update pet %d: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.pets.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("mongo: delete pet %d: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}

// nextID incrementa el contador de forma atómica; los ids borrados no se reutilizan.
func (r *PetsRepo) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var c counterDoc
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": petsCounterKey},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("mongo: next pet id: %w", err)
	}
	return c.Seq, nil
}
