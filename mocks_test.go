package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	identity "github.com/identikit/go-identity-mongo"
)

// MockCollection implements identity.Collection. Variadic driver options are
// dropped from expectations to keep call matching simple.
type MockCollection struct {
	mock.Mock
}

var _ identity.Collection = (*MockCollection)(nil)

func (m *MockCollection) InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document)
	res, _ := args.Get(0).(*mongo.InsertOneResult)
	return res, args.Error(1)
}

func (m *MockCollection) DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).(*mongo.DeleteResult)
	return res, args.Error(1)
}

func (m *MockCollection) Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	args := m.Called(ctx, filter)
	cur, _ := args.Get(0).(*mongo.Cursor)
	return cur, args.Error(1)
}

func (m *MockCollection) FindOneAndReplace(ctx context.Context, filter any, replacement any, opts ...*options.FindOneAndReplaceOptions) *mongo.SingleResult {
	args := m.Called(ctx, filter, replacement)
	res, _ := args.Get(0).(*mongo.SingleResult)
	return res
}

// cursorFor pre-loads a driver cursor with the given documents, exactly what
// a real Find would hand back.
func cursorFor(t *testing.T, docs ...any) *mongo.Cursor {
	t.Helper()
	cur, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	require.NoError(t, err)
	return cur
}

func emptyCursor(t *testing.T) *mongo.Cursor {
	t.Helper()
	cur, err := mongo.NewCursorFromDocuments(nil, nil, nil)
	require.NoError(t, err)
	return cur
}

func replacedResult(doc any) *mongo.SingleResult {
	return mongo.NewSingleResultFromDocument(doc, nil, nil)
}

func noDocumentsResult() *mongo.SingleResult {
	return mongo.NewSingleResultFromDocument(struct{}{}, mongo.ErrNoDocuments, nil)
}

// duplicateKeyErr builds the write exception the server returns on a
// uniqueness-index violation.
func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: "E11000 duplicate key error"},
		},
	}
}
