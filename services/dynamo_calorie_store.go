package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Ajmalajjuca/Bite-check/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the slice of the DynamoDB client the store uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoCalorieStore keeps one item per "{userId}_{date}" key. Range reads
// go through a GSI with userId as hash key and date as range key.
type DynamoCalorieStore struct {
	client    DynamoAPI
	tableName string
	indexName string
}

func NewDynamoCalorieStore(client DynamoAPI, tableName, indexName string) *DynamoCalorieStore {
	return &DynamoCalorieStore{client: client, tableName: tableName, indexName: indexName}
}

func (s *DynamoCalorieStore) Get(ctx context.Context, userID, date string) (*models.DailyCalorieRecord, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: models.DailyCalorieKey(userID, date)},
		},
	})
	if err != nil {
		return nil, classifyDynamo("get calories", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}

	var rec models.DailyCalorieRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calorie record: %w", err)
	}
	return &rec, nil
}

// Increment uses ADD, which DynamoDB applies atomically and which treats a
// missing item or attribute as 0.
func (s *DynamoCalorieStore) Increment(ctx context.Context, userID, date string, delta int, at time.Time) (*models.DailyCalorieRecord, error) {
	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: models.DailyCalorieKey(userID, date)},
		},
		UpdateExpression: aws.String("ADD #calories :delta SET #userId = :userId, #date = :date, #updatedAt = :updatedAt"),
		ExpressionAttributeNames: map[string]string{
			"#calories":  "calories",
			"#userId":    "userId",
			"#date":      "date",
			"#updatedAt": "updatedAt",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta":     &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
			":userId":    &types.AttributeValueMemberS{Value: userID},
			":date":      &types.AttributeValueMemberS{Value: date},
			":updatedAt": &types.AttributeValueMemberS{Value: at.Format(time.RFC3339Nano)},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, classifyDynamo("increment calories", err)
	}

	var rec models.DailyCalorieRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calorie record: %w", err)
	}
	return &rec, nil
}

func (s *DynamoCalorieStore) List(ctx context.Context, userID, from, to string) ([]models.DailyCalorieRecord, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String(s.indexName),
		KeyConditionExpression: aws.String("#userId = :userId AND #date BETWEEN :from AND :to"),
		ExpressionAttributeNames: map[string]string{
			"#userId": "userId",
			"#date":   "date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userId": &types.AttributeValueMemberS{Value: userID},
			":from":   &types.AttributeValueMemberS{Value: from},
			":to":     &types.AttributeValueMemberS{Value: to},
		},
		ScanIndexForward: aws.Bool(true),
	}

	var out []models.DailyCalorieRecord
	for {
		page, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, classifyDynamo("list calories", err)
		}
		var recs []models.DailyCalorieRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &recs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal calorie records: %w", err)
		}
		out = append(out, recs...)

		if len(page.LastEvaluatedKey) == 0 {
			return out, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}
