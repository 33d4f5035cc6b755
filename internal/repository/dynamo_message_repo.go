package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"shui/internal/domain"
)

// dynamoAPI es el subconjunto de *dynamodb.Client que usa el repositorio.
type dynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoMessageRepository guarda cada mensaje como un item con clave de particion "id".
type DynamoMessageRepository struct {
	client dynamoAPI
	table  string
}

func NewDynamoMessageRepository(client dynamoAPI, table string) *DynamoMessageRepository {
	return &DynamoMessageRepository{client: client, table: table}
}

func (r *DynamoMessageRepository) Create(ctx context.Context, message domain.Message) error {
	item, err := messageToItem(message)
	if err != nil {
		return err
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	return err
}

// List recorre la tabla completa siguiendo LastEvaluatedKey.
func (r *DynamoMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.table),
	})

	messages := []domain.Message{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			msg, err := itemToMessage(item)
			if err != nil {
				return nil, err
			}
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

func (r *DynamoMessageRepository) GetByID(ctx context.Context, id string) (domain.Message, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.Message{}, err
	}
	if len(out.Item) == 0 {
		return domain.Message{}, ErrNotFound
	}
	return itemToMessage(out.Item)
}

// UpdateText nunca crea items: la condicion exige que el id exista.
func (r *DynamoMessageRepository) UpdateText(ctx context.Context, id, text string) (domain.Message, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                aws.String(r.table),
		Key:                      idKey(id),
		UpdateExpression:         aws.String("SET #t = :t"),
		ConditionExpression:      aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{"#t": "text"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberS{Value: text},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return domain.Message{}, ErrNotFound
		}
		return domain.Message{}, err
	}
	return itemToMessage(out.Attributes)
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// dynamoItem es la forma del item en la tabla. createdAt se guarda como texto ISO-8601.
type dynamoItem struct {
	ID        string `dynamodbav:"id"`
	Username  string `dynamodbav:"username"`
	Text      string `dynamodbav:"text"`
	CreatedAt string `dynamodbav:"createdAt"`
}

func messageToItem(m domain.Message) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(dynamoItem{
		ID:        m.ID,
		Username:  m.Username,
		Text:      m.Text,
		CreatedAt: formatTimestamp(m.CreatedAt),
	})
}

func itemToMessage(item map[string]types.AttributeValue) (domain.Message, error) {
	var it dynamoItem
	if err := attributevalue.UnmarshalMap(item, &it); err != nil {
		return domain.Message{}, fmt.Errorf("unmarshal item: %w", err)
	}
	if it.ID == "" || it.Username == "" || it.Text == "" {
		return domain.Message{}, fmt.Errorf("item %q is missing required attributes", it.ID)
	}
	createdAt, err := parseTimestamp(it.CreatedAt)
	if err != nil {
		return domain.Message{}, fmt.Errorf("parse createdAt: %w", err)
	}
	return domain.Message{ID: it.ID, Username: it.Username, Text: it.Text, CreatedAt: createdAt}, nil
}
