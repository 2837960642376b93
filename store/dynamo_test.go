package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jbarratt/rpsquiz/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items in a map keyed by PK
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI
	items map[string]map[string]*dynamodb.AttributeValue
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: make(map[string]map[string]*dynamodb.AttributeValue)}
}

func (f *fakeDynamo) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[aws.StringValue(in.Key["PK"].S)]}, nil
}

func (f *fakeDynamo) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.items[aws.StringValue(in.Item["PK"].S)] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItemWithContext(_ aws.Context, in *dynamodb.DeleteItemInput, _ ...request.Option) (*dynamodb.DeleteItemOutput, error) {
	delete(f.items, aws.StringValue(in.Key["PK"].S))
	return &dynamodb.DeleteItemOutput{}, nil
}

func TestDynamoStoreFake(t *testing.T) {
	exerciseStore(t, NewDynamo(newFakeDynamo(), "quiz", time.Hour))
}

func TestDynamoItemLayout(t *testing.T) {
	fake := newFakeDynamo()
	s := NewDynamo(fake, "quiz", time.Minute)
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	q := &game.Quiz{
		ID:    "XYZ12",
		State: game.RoundState{OpponentMove: game.Scissors, Objective: game.Lose, RoundsPlayed: 2, Score: 1},
	}
	require.NoError(t, s.Save(context.Background(), q))

	item := fake.items["QUIZ#XYZ12"]
	require.NotNil(t, item)
	assert.Equal(t, "QUIZ#XYZ12", aws.StringValue(item["SK"].S))
	assert.Equal(t, "QuizItem", aws.StringValue(item["Type"].S))
	assert.Equal(t, "scissors", aws.StringValue(item["OpponentMove"].S))
	assert.Equal(t, "1700000060", aws.StringValue(item["ExpiresAt"].N))
	_, hasLastPlay := item["LastPlay"]
	assert.False(t, hasLastPlay, "unanswered quizzes have no last play")

	// expired but not yet swept by dynamo
	now = now.Add(2 * time.Minute)
	_, err := s.Load(context.Background(), "XYZ12")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuizFromItemRejectsBadRecords(t *testing.T) {
	_, err := QuizFromItem(&QuizItem{QuizID: "A", OpponentMove: "lizard"})
	assert.ErrorIs(t, err, game.ErrInvalidMove)

	_, err = QuizFromItem(&QuizItem{QuizID: "A", OpponentMove: "rock", RoundsPlayed: 2, Score: 3})
	assert.Error(t, err)
}

func TestGameStore(t *testing.T) {
	table := os.Getenv("TABLE_NAME")
	if table == "" {
		t.Skip("TABLE_NAME not set; skipping dynamo integration test")
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
	})
	if err != nil {
		t.Fatalf("unable to create session: %s", err)
	}

	exerciseStore(t, NewDynamo(dynamodb.New(sess), table, time.Hour))
}
