package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"goldenwine/errs"
)

type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

var _ Store = (*MongoStore)(nil)

func mongoField(name string) string {
	if name == "id" {
		return "_id"
	}
	return name
}

func (s *MongoStore) Get(ctx context.Context, collection, id string, out any) error {
	err := s.DB.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.NotFound(collection, id)
	}
	if err != nil {
		return errs.Persistence("get "+collection, err)
	}
	return nil
}

func (s *MongoStore) Find(ctx context.Context, collection string, q Query, out any) error {
	filter := bson.M{}
	for _, p := range q.Filter {
		field := mongoField(p.Field)
		switch p.Op {
		case OpEq:
			filter[field] = p.Value
		case OpGte, OpLte:
			m, ok := filter[field].(bson.M)
			if !ok {
				m = bson.M{}
				filter[field] = m
			}
			m["$"+p.Op] = p.Value
		}
	}

	opts := options.Find()
	if q.SortBy != "" {
		dir := 1
		if q.Desc {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: mongoField(q.SortBy), Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cursor, err := s.DB.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return errs.Persistence("find "+collection, err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return errs.Persistence("decode "+collection, err)
	}
	return nil
}

func (s *MongoStore) Set(ctx context.Context, collection, id string, doc any) error {
	_, err := s.DB.Collection(collection).ReplaceOne(
		ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.Persistence("set "+collection, err)
	}
	return nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return "", errs.Persistence("add "+collection, err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", errs.Persistence("add "+collection, err)
	}
	id := uuid.NewString()
	m["_id"] = id
	if _, err := s.DB.Collection(collection).InsertOne(ctx, m); err != nil {
		return "", errs.Persistence("add "+collection, err)
	}
	return id, nil
}

func (s *MongoStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	set := bson.M{}
	for k, v := range fields {
		set[mongoField(k)] = v
	}
	res, err := s.DB.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return errs.Persistence("update "+collection, err)
	}
	if res.MatchedCount == 0 {
		return errs.NotFound(collection, id)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.DB.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.Persistence("delete "+collection, err)
	}
	if res.DeletedCount == 0 {
		return errs.NotFound(collection, id)
	}
	return nil
}
