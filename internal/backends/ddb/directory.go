package ddb

import (
	"context"
	"errors"
	"sort"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"siteconf/internal/types"
)

type Directory struct {
	table string
	cli   *dynamodb.Client
}

func NewDirectory(table string, cli *dynamodb.Client) *Directory {
	createTableIfNotExists(cli, table)
	return &Directory{table: table, cli: cli}
}

type tenantItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	types.Tenant
}

type refItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	ID int64  `dynamodbav:"id"`
}

func (d *Directory) Resolve(ctx context.Context, ref types.TenantRef) (types.Tenant, error) {
	id := ref.ID
	if id == 0 && ref.Slug != "" {
		var err error
		id, err = d.lookupID(ctx, pkSlug(ref.Slug), skSlugIndex)
		if err != nil {
			return types.Tenant{}, err
		}
		if id == 0 {
			return types.Tenant{}, types.Err(types.ErrTenantNotFound, nil, "tenant %s", ref)
		}
	}
	if id == 0 {
		var err error
		id, err = d.lookupID(ctx, pkMeta, skDefault)
		if err != nil {
			return types.Tenant{}, err
		}
		if id == 0 {
			return types.Tenant{}, types.Err(types.ErrTenantNotFound, nil, "no default tenant")
		}
	}
	out, err := d.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &d.table,
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pkTenant(id)},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skProfile},
		},
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return types.Tenant{}, types.Err(types.ErrStoreAccess, err, "load tenant %d", id)
	}
	if out.Item == nil {
		return types.Tenant{}, types.Err(types.ErrTenantNotFound, nil, "tenant %s", ref)
	}
	var item tenantItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return types.Tenant{}, types.Err(types.ErrStoreAccess, err, "corrupt tenant record %d", id)
	}
	return item.Tenant, nil
}

func (d *Directory) lookupID(ctx context.Context, pk, sk string) (int64, error) {
	out, err := d.cli.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &d.table,
		Key: map[string]ddbTypes.AttributeValue{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pk},
			"SK": &ddbTypes.AttributeValueMemberS{Value: sk},
		},
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return 0, types.Err(types.ErrStoreAccess, err, "lookup %s", pk)
	}
	if out.Item == nil {
		return 0, nil
	}
	var item refItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return 0, types.Err(types.ErrStoreAccess, err, "corrupt index item %s", pk)
	}
	return item.ID, nil
}

func (d *Directory) List(ctx context.Context) ([]types.Tenant, error) {
	out, err := d.cli.Scan(ctx, &dynamodb.ScanInput{
		TableName:        &d.table,
		FilterExpression: awsString("begins_with(PK, :pk) AND SK = :sk"),
		ExpressionAttributeValues: map[string]ddbTypes.AttributeValue{
			":pk": &ddbTypes.AttributeValueMemberS{Value: "TENANT#"},
			":sk": &ddbTypes.AttributeValueMemberS{Value: skProfile},
		},
	})
	if err != nil {
		return nil, types.Err(types.ErrStoreAccess, err, "list tenants")
	}
	tenants := make([]types.Tenant, 0, len(out.Items))
	for _, raw := range out.Items {
		var item tenantItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, types.Err(types.ErrStoreAccess, err, "corrupt tenant record")
		}
		tenants = append(tenants, item.Tenant)
	}
	sort.Slice(tenants, func(i, j int) bool { return tenants[i].ID < tenants[j].ID })
	return tenants, nil
}

func (d *Directory) Default(ctx context.Context) (types.Tenant, error) {
	return d.Resolve(ctx, types.TenantRef{})
}

func (d *Directory) Upsert(ctx context.Context, t types.Tenant) error {
	if err := t.Validate(); err != nil {
		return err
	}
	item, err := attributevalue.MarshalMap(tenantItem{
		PK:     pkTenant(t.ID),
		SK:     skProfile,
		Tenant: t,
	})
	if err != nil {
		return err
	}
	if _, err := d.cli.PutItem(ctx, &dynamodb.PutItemInput{TableName: &d.table, Item: item}); err != nil {
		return types.Err(types.ErrStoreAccess, err, "store tenant %d", t.ID)
	}
	slugItem, err := attributevalue.MarshalMap(refItem{PK: pkSlug(t.Slug), SK: skSlugIndex, ID: t.ID})
	if err != nil {
		return err
	}
	if _, err := d.cli.PutItem(ctx, &dynamodb.PutItemInput{TableName: &d.table, Item: slugItem}); err != nil {
		return types.Err(types.ErrStoreAccess, err, "index slug %q", t.Slug)
	}
	// First tenant in becomes the default.
	defaultItem, err := attributevalue.MarshalMap(refItem{PK: pkMeta, SK: skDefault, ID: t.ID})
	if err != nil {
		return err
	}
	_, err = d.cli.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &d.table,
		Item:                defaultItem,
		ConditionExpression: awsString("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cond *ddbTypes.ConditionalCheckFailedException
		if !errors.As(err, &cond) {
			return types.Err(types.ErrStoreAccess, err, "set default tenant")
		}
	}
	return nil
}

func (d *Directory) Delete(ctx context.Context, id int64) error {
	t, err := d.Resolve(ctx, types.ByID(id))
	if err != nil {
		if errors.Is(err, types.ErrTenantNotFound) {
			return nil
		}
		return err
	}
	for _, key := range []map[string]ddbTypes.AttributeValue{
		{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pkSlug(t.Slug)},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skSlugIndex},
		},
		{
			"PK": &ddbTypes.AttributeValueMemberS{Value: pkTenant(id)},
			"SK": &ddbTypes.AttributeValueMemberS{Value: skProfile},
		},
	} {
		if _, err := d.cli.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: &d.table, Key: key}); err != nil {
			return types.Err(types.ErrStoreAccess, err, "delete tenant %d", id)
		}
	}
	return nil
}
