package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"git.fiblab.net/sim/transit/request"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	log = logrus.WithField("module", "store")

	ErrInvalidPath = errors.New("invalid path, expect {fspath} or {db}.{coll}")
	ErrNoMongoURI  = errors.New("mongo uri is required to read a collection")
)

const CONNECT_TIMEOUT = 10 * time.Second

// 从mongo集合中读取全部构建请求，每个文档为一个Stop或Bus
func LoadFromMongo(ctx context.Context, mongoURI string, p *Path) ([]request.BaseRequest, error) {
	if mongoURI == "" {
		return nil, ErrNoMongoURI
	}
	if p == nil || p.IsFile() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, p)
	}
	connectCtx, cancel := context.WithTimeout(ctx, CONNECT_TIMEOUT)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(context.Background())

	log.Infof("download base requests from %s", p)
	coll := client.Database(p.DB).Collection(p.Coll)
	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", p, err)
	}
	defer cursor.Close(ctx)
	reqs := make([]request.BaseRequest, 0)
	if err := cursor.All(ctx, &reqs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	log.Infof("downloaded %d base requests from %s", len(reqs), p)
	return reqs, nil
}

// 写入一组构建请求，替换集合中的原有内容
func SaveToMongo(ctx context.Context, mongoURI string, p *Path, reqs []request.BaseRequest) error {
	if mongoURI == "" {
		return ErrNoMongoURI
	}
	if p == nil || p.IsFile() {
		return fmt.Errorf("%w: %v", ErrInvalidPath, p)
	}
	connectCtx, cancel := context.WithTimeout(ctx, CONNECT_TIMEOUT)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(context.Background())

	coll := client.Database(p.DB).Collection(p.Coll)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("clear %s: %w", p, err)
	}
	if len(reqs) == 0 {
		return nil
	}
	docs := make([]any, 0, len(reqs))
	for _, req := range reqs {
		docs = append(docs, req)
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert into %s: %w", p, err)
	}
	return nil
}
