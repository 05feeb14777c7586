package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"

	"geticard_backend/internal/models"
)

// DynamoConfig holds the settings for the DynamoDB document-store backend.
type DynamoConfig struct {
	Region     string
	Endpoint   string // for dynamodb-local or compatible stores
	AccessKey  string
	SecretKey  string
	UsersTable string
	CardsTable string
}

// NewDynamoClient builds a single DynamoDB client shared by both
// repositories. Credentials fall back to the default AWS chain when no
// static keys are configured.
func NewDynamoClient(cfg DynamoConfig) (*dynamodb.DynamoDB, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamodb session: %w", err)
	}

	return dynamodb.New(sess), nil
}

func isConditionalCheckFailed(err error) bool {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		return aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
	}
	return false
}

// DynamoUserRepository implements UserRepository on a DynamoDB table keyed
// by email.
type DynamoUserRepository struct {
	client *dynamodb.DynamoDB
	table  string
}

func NewDynamoUserRepository(client *dynamodb.DynamoDB, table string) *DynamoUserRepository {
	return &DynamoUserRepository{client: client, table: table}
}

func (r *DynamoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	out, err := r.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]*dynamodb.AttributeValue{
			"email": {S: aws.String(email)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if out.Item == nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := dynamodbattribute.UnmarshalMap(out.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (r *DynamoUserRepository) Create(ctx context.Context, user *models.User) error {
	item, err := dynamodbattribute.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = r.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to put user: %w", err)
	}
	return nil
}

// DynamoCardRepository implements CardRepository on a DynamoDB table keyed
// by card_id. The contact-email lookup is a table scan with a filter
// expression, matching the store's documented access pattern.
type DynamoCardRepository struct {
	client *dynamodb.DynamoDB
	table  string
}

func NewDynamoCardRepository(client *dynamodb.DynamoDB, table string) *DynamoCardRepository {
	return &DynamoCardRepository{client: client, table: table}
}

func (r *DynamoCardRepository) FindByID(ctx context.Context, cardID string) (*models.Card, error) {
	out, err := r.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]*dynamodb.AttributeValue{
			"card_id": {S: aws.String(cardID)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if out.Item == nil {
		return nil, ErrCardNotFound
	}

	var card models.Card
	if err := dynamodbattribute.UnmarshalMap(out.Item, &card); err != nil {
		return nil, fmt.Errorf("failed to unmarshal card: %w", err)
	}
	return &card, nil
}

func (r *DynamoCardRepository) FindByContactEmail(ctx context.Context, email string) (*models.Card, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("contact_email").Equal(expression.Value(email))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan expression: %w", err)
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	for {
		out, err := r.client.ScanWithContext(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cards: %w", err)
		}

		if len(out.Items) > 0 {
			var card models.Card
			if err := dynamodbattribute.UnmarshalMap(out.Items[0], &card); err != nil {
				return nil, fmt.Errorf("failed to unmarshal card: %w", err)
			}
			return &card, nil
		}

		if out.LastEvaluatedKey == nil {
			return nil, ErrCardNotFound
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (r *DynamoCardRepository) Create(ctx context.Context, card *models.Card) error {
	item, err := dynamodbattribute.MarshalMap(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	_, err = r.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(card_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrCardAlreadyExists
		}
		return fmt.Errorf("failed to put card: %w", err)
	}
	return nil
}

func (r *DynamoCardRepository) Save(ctx context.Context, card *models.Card) error {
	item, err := dynamodbattribute.MarshalMap(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card: %w", err)
	}

	_, err = r.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put card: %w", err)
	}
	return nil
}

func (r *DynamoCardRepository) Delete(ctx context.Context, cardID string) error {
	_, err := r.client.DeleteItemWithContext(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key: map[string]*dynamodb.AttributeValue{
			"card_id": {S: aws.String(cardID)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}
