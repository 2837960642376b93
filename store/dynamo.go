package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jbarratt/rpsquiz/game"
)

const quizItemType = "QuizItem"

// QuizItem is for quiz status items
type QuizItem struct {
	PK           string
	SK           string
	Type         string
	QuizID       string
	OpponentMove string
	Objective    bool
	RoundsPlayed int
	Score        int
	Answered     bool
	LastPlay     string `dynamodbav:",omitempty"`
	LastCorrect  bool
	Summary      string `dynamodbav:",omitempty"`
	// ExpiresAt is the table's TTL attribute, in unix seconds
	ExpiresAt int64 `dynamodbav:",omitempty"`
}

// Dynamo stores the dynamo client and other metadata needed, like the table
type Dynamo struct {
	d         dynamodbiface.DynamoDBAPI
	tableName string
	ttl       time.Duration
	now       func() time.Time
}

// NewDynamo creates a dynamo store. A zero ttl leaves items without an expiry.
func NewDynamo(d dynamodbiface.DynamoDBAPI, tableName string, ttl time.Duration) *Dynamo {
	return &Dynamo{
		d:         d,
		tableName: tableName,
		ttl:       ttl,
		now:       time.Now,
	}
}

func quizKey(quizID string) map[string]*dynamodb.AttributeValue {
	k := fmt.Sprintf("QUIZ#%s", quizID)
	return map[string]*dynamodb.AttributeValue{
		"PK": {S: aws.String(k)},
		"SK": {S: aws.String(k)},
	}
}

// Load returns a populated quiz based on a quizID, or ErrNotFound if no quiz exists
func (s *Dynamo) Load(ctx context.Context, quizID string) (*game.Quiz, error) {
	input := &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            quizKey(quizID),
		ConsistentRead: aws.Bool(true),
	}
	result, err := s.d.GetItemWithContext(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("fetching quiz %s: %w", quizID, err)
	}
	if len(result.Item) == 0 {
		return nil, ErrNotFound
	}

	qi := QuizItem{}
	if err := dynamodbattribute.UnmarshalMap(result.Item, &qi); err != nil {
		return nil, fmt.Errorf("reading quiz record %s: %w", quizID, err)
	}
	if qi.ExpiresAt != 0 && s.now().Unix() >= qi.ExpiresAt {
		// dynamo deletes expired items lazily
		return nil, ErrNotFound
	}
	return QuizFromItem(&qi)
}

// QuizFromItem builds a quiz from the Dynamo QuizItem
func QuizFromItem(qi *QuizItem) (*game.Quiz, error) {
	opp, err := game.ParseMove(qi.OpponentMove)
	if err != nil {
		return nil, fmt.Errorf("quiz %s: %w", qi.QuizID, err)
	}
	q := &game.Quiz{
		ID: qi.QuizID,
		State: game.RoundState{
			OpponentMove: opp,
			Objective:    game.Objective(qi.Objective),
			RoundsPlayed: qi.RoundsPlayed,
			Score:        qi.Score,
		},
		Answered:    qi.Answered,
		LastCorrect: qi.LastCorrect,
		Summary:     qi.Summary,
	}
	if qi.Answered {
		if q.LastPlay, err = game.ParseMove(qi.LastPlay); err != nil {
			return nil, fmt.Errorf("quiz %s: %w", qi.QuizID, err)
		}
	}
	if err := q.State.Validate(); err != nil {
		return nil, fmt.Errorf("quiz %s: %w", qi.QuizID, err)
	}
	return q, nil
}

// ItemFromQuiz builds the dynamo item for a quiz, keys included
func ItemFromQuiz(q *game.Quiz) *QuizItem {
	k := fmt.Sprintf("QUIZ#%s", q.ID)
	qi := &QuizItem{
		PK:           k,
		SK:           k,
		Type:         quizItemType,
		QuizID:       q.ID,
		OpponentMove: q.State.OpponentMove.String(),
		Objective:    bool(q.State.Objective),
		RoundsPlayed: q.State.RoundsPlayed,
		Score:        q.State.Score,
		Answered:     q.Answered,
		LastCorrect:  q.LastCorrect,
		Summary:      q.Summary,
	}
	if q.Answered {
		qi.LastPlay = q.LastPlay.String()
	}
	return qi
}

// Save writes the whole quiz, replacing what was there
func (s *Dynamo) Save(ctx context.Context, q *game.Quiz) error {
	qi := ItemFromQuiz(q)
	if s.ttl > 0 {
		qi.ExpiresAt = s.now().Add(s.ttl).Unix()
	}

	av, err := dynamodbattribute.MarshalMap(qi)
	if err != nil {
		return fmt.Errorf("marshalling quiz item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		Item:      av,
		TableName: aws.String(s.tableName),
	}
	if _, err := s.d.PutItemWithContext(ctx, input); err != nil {
		return fmt.Errorf("storing quiz %s: %w", q.ID, err)
	}
	return nil
}

// Delete removes a quiz, missing IDs are not an error
func (s *Dynamo) Delete(ctx context.Context, quizID string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       quizKey(quizID),
	}
	if _, err := s.d.DeleteItemWithContext(ctx, input); err != nil {
		return fmt.Errorf("deleting quiz %s: %w", quizID, err)
	}
	return nil
}
