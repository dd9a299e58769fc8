package database

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type fakeTables struct {
	describeErr error
	createErr   error
	created     []string
}

func (f *fakeTables) DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func (f *fakeTables) CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.created = append(f.created, *in.TableName)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &dynamodb.CreateTableOutput{}, nil
}

func TestEnsureStorageTable(t *testing.T) {
	ctx := context.Background()

	t.Run("existing table", func(t *testing.T) {
		f := &fakeTables{}
		if err := EnsureStorageTable(ctx, f, "t"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.created) != 0 {
			t.Fatalf("must not create an existing table")
		}
	})

	t.Run("missing table is created", func(t *testing.T) {
		f := &fakeTables{describeErr: &types.ResourceNotFoundException{}}
		if err := EnsureStorageTable(ctx, f, "t"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.created) != 1 || f.created[0] != "t" {
			t.Fatalf("unexpected creates %v", f.created)
		}
	})

	t.Run("create race is tolerated", func(t *testing.T) {
		f := &fakeTables{describeErr: &types.ResourceNotFoundException{}, createErr: &types.ResourceInUseException{}}
		if err := EnsureStorageTable(ctx, f, "t"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("other errors surface", func(t *testing.T) {
		f := &fakeTables{describeErr: errors.New("denied")}
		if err := EnsureStorageTable(ctx, f, "t"); err == nil {
			t.Fatalf("expected error")
		}
	})
}
