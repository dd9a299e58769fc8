package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"product_estimator/internal/usecase/interfaces"
)

func exerciseStorage(t *testing.T, s interfaces.IStorage) {
	t.Helper()
	ctx := context.Background()

	_, found, err := s.Get(ctx, "productEstimatorEstimateData")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.Set(ctx, "productEstimatorEstimateData", `{"estimates":{}}`))
	v, found, err := s.Get(ctx, "productEstimatorEstimateData")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, `{"estimates":{}}`, v)

	require.NoError(t, s.Set(ctx, "productEstimatorEstimateData", `{"estimates":{"a":{}}}`))
	v, _, _ = s.Get(ctx, "productEstimatorEstimateData")
	require.Equal(t, `{"estimates":{"a":{}}}`, v)

	require.NoError(t, s.Remove(ctx, "productEstimatorEstimateData"))
	require.NoError(t, s.Remove(ctx, "productEstimatorEstimateData"), "removing an absent key is not an error")
	_, found, err = s.Get(ctx, "productEstimatorEstimateData")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage()
	require.Equal(t, "memory", s.Name())
	exerciseStorage(t, s)
}

func TestFileStorage(t *testing.T) {
	_, err := NewFileStorage("")
	require.Error(t, err)

	s, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "file", s.Name())
	exerciseStorage(t, s)

	require.NoError(t, s.Set(context.Background(), "../escape/key", "x"))
	v, found, err := s.Get(context.Background(), "../escape/key")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "x", v)
}

type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue
	err   error
}

func keyOf(key map[string]types.AttributeValue) string {
	return key["key"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.items[keyOf(in.Item)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.items, keyOf(in.Key))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamoDBStorage(t *testing.T) {
	fake := &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
	s := NewDynamoDBStorage(fake, "")
	require.Equal(t, DefaultStorageTableName, s.tableName)
	require.Equal(t, "dynamodb", s.Name())
	exerciseStorage(t, s)

	fake.err = errors.New("throttled")
	_, _, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, s.Set(context.Background(), "k", "v"))
}

type fakeRedis struct {
	values map[string]string
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.values[k]; ok {
			delete(f.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisStorage(t *testing.T) {
	fake := &fakeRedis{values: map[string]string{}}
	s := NewRedisStorage(fake, "pe:")
	require.Equal(t, "redis", s.Name())
	exerciseStorage(t, s)

	require.NoError(t, s.Set(context.Background(), "k", "v"))
	require.Contains(t, fake.values, "pe:k")
}
