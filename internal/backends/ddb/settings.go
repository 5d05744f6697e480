package ddb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"siteconf/internal/codec"
	"siteconf/internal/types"
)

type SettingsStore struct {
	table string
	cli   *dynamodb.Client
}

func NewSettingsStore(table string, cli *dynamodb.Client) *SettingsStore {
	// Creates the table only if it doesn't exist.
	// We ignore the error if the table already exists.
	createTableIfNotExists(cli, table)
	return &SettingsStore{table: table, cli: cli}
}

type settingItem struct {
	PK    string `dynamodbav:"PK"`
	SK    string `dynamodbav:"SK"`
	Value string `dynamodbav:"v"`
}

func (s *SettingsStore) GetGlobal(ctx context.Context, key string) (string, error) {
	return s.get(ctx, pkGlobalSettings, key)
}

func (s *SettingsStore) SetGlobal(ctx context.Context, key, value string) error {
	return s.set(ctx, pkGlobalSettings, key, value)
}

func (s *SettingsStore) GetTenant(ctx context.Context, tenantID int64, key string) (string, error) {
	return s.get(ctx, pkSite(tenantID), key)
}

func (s *SettingsStore) SetTenant(ctx context.Context, tenantID int64, key, value string) error {
	return s.set(ctx, pkSite(tenantID), key, value)
}

func (s *SettingsStore) get(ctx context.Context, pk, key string) (string, error) {
	out, err := s.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &s.table,
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pk},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skOption(key)},
		},
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return "", types.Err(types.ErrStoreAccess, err, "get %s/%s", pk, key)
	}
	if out.Item == nil {
		return "", types.ErrNotFound
	}
	var item settingItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return "", types.Err(types.ErrStoreAccess, err, "corrupt setting %s/%s", pk, key)
	}
	return codec.Decode(item.Value)
}

func (s *SettingsStore) set(ctx context.Context, pk, key, value string) error {
	item, err := attributevalue.MarshalMap(settingItem{
		PK:    pk,
		SK:    skOption(key),
		Value: codec.Encode(value),
	})
	if err != nil {
		return err
	}
	_, err = s.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.table,
		Item:      item,
	})
	if err != nil {
		return types.Err(types.ErrStoreAccess, err, "set %s/%s", pk, key)
	}
	return nil
}
