package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"bounce/config"
	"bounce/model"
)

// planTypeIndex is the GSI on the users table keyed by plan_type,
// used by the trial-expiry sweep.
const planTypeIndex = "plan_type_index"

// DynamoStore implements Store on four DynamoDB tables: users_id,
// users_email, public_chats, private_chats.
type DynamoStore struct {
	client *dynamodb.Client
	tables config.DynamoConfig
}

// NewDynamo wraps an initialized DynamoDB client.
func NewDynamo(client *dynamodb.Client, tables config.DynamoConfig) *DynamoStore {
	return &DynamoStore{client: client, tables: tables}
}

func (s *DynamoStore) chatTable(kind model.ChatKind) (table, keyName string) {
	if kind == model.PrivateChat {
		return s.tables.PrivateChats, "private_chat_id"
	}
	return s.tables.PublicChats, "public_chat_id"
}

// GetConversation loads a transcript; a missing item yields a nil
// conversation and no error.
func (s *DynamoStore) GetConversation(ctx context.Context, kind model.ChatKind, id string) (model.Conversation, error) {
	table, keyName := s.chatTable(kind)
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]types.AttributeValue{
			keyName: &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get conversation %s: %w", id, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	chatAttr, ok := out.Item["chat"]
	if !ok {
		return nil, nil
	}
	var conv model.Conversation
	if err := attributevalue.Unmarshal(chatAttr, &conv); err != nil {
		return nil, fmt.Errorf("unmarshal conversation %s: %w", id, err)
	}
	return conv, nil
}

// SaveConversation overwrites the transcript item.
func (s *DynamoStore) SaveConversation(ctx context.Context, kind model.ChatKind, id string, conv model.Conversation) error {
	table, keyName := s.chatTable(kind)
	chatAttr, err := attributevalue.Marshal(conv)
	if err != nil {
		return fmt.Errorf("marshal conversation %s: %w", id, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item: map[string]types.AttributeValue{
			keyName: &types.AttributeValueMemberS{Value: id},
			"chat":  chatAttr,
		},
	})
	if err != nil {
		return fmt.Errorf("save conversation %s: %w", id, err)
	}
	return nil
}

// GetUser returns the record for a SlackID, or nil when absent.
func (s *DynamoStore) GetUser(ctx context.Context, slackID string) (*model.UserRecord, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tables.UsersTable),
		Key: map[string]types.AttributeValue{
			"slack_id": &types.AttributeValueMemberS{Value: slackID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", slackID, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var rec model.UserRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal user %s: %w", slackID, err)
	}
	return &rec, nil
}

// PutUser creates or overwrites a user record.
func (s *DynamoStore) PutUser(ctx context.Context, user *model.UserRecord) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("marshal user %s: %w", user.SlackID, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tables.UsersTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put user %s: %w", user.SlackID, err)
	}
	return nil
}

// GetEmail returns the membership record for an email, or nil when absent.
func (s *DynamoStore) GetEmail(ctx context.Context, email string) (*model.EmailRecord, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tables.EmailsTable),
		Key: map[string]types.AttributeValue{
			"email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get email %s: %w", email, err)
	}
	if out.Item == nil {
		return nil, nil
	}
	var rec model.EmailRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal email %s: %w", email, err)
	}
	return &rec, nil
}

// PutEmail creates or overwrites an email membership record.
func (s *DynamoStore) PutEmail(ctx context.Context, rec *model.EmailRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal email %s: %w", rec.Email, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tables.EmailsTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put email %s: %w", rec.Email, err)
	}
	return nil
}

// ListActiveTrials queries the plan_type GSI for trial users that are
// still active, following pagination until the index is exhausted.
func (s *DynamoStore) ListActiveTrials(ctx context.Context) ([]*model.UserRecord, error) {
	var records []*model.UserRecord
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tables.UsersTable),
			IndexName:              aws.String(planTypeIndex),
			KeyConditionExpression: aws.String("plan_type = :plan"),
			FilterExpression:       aws.String("active = :active"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":plan":   &types.AttributeValueMemberS{Value: model.PlanTrial},
				":active": &types.AttributeValueMemberBOOL{Value: true},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("query active trials: %w", err)
		}
		var page []*model.UserRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("unmarshal active trials: %w", err)
		}
		records = append(records, page...)
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return records, nil
}
