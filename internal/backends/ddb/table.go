package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbTypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"
)

// Single-table layout:
//
//	GLOBAL            / OPT#<key>   global setting
//	SITE#<id>         / OPT#<key>   tenant-partitioned setting
//	TENANT#<id>       / PROFILE     tenant record
//	SLUG#<slug>       / TENANT      slug -> id index
//	META              / DEFAULT     default tenant id
const (
	pkGlobalSettings = "GLOBAL"
	pkMeta           = "META"
	skProfile        = "PROFILE"
	skSlugIndex      = "TENANT"
	skDefault        = "DEFAULT"
)

func pkSite(id int64) string     { return fmt.Sprintf("SITE#%d", id) }
func pkTenant(id int64) string   { return fmt.Sprintf("TENANT#%d", id) }
func pkSlug(slug string) string  { return fmt.Sprintf("SLUG#%s", slug) }
func skOption(key string) string { return fmt.Sprintf("OPT#%s", key) }

func createTableIfNotExists(client *dynamodb.Client, table string) {
	_, err := client.CreateTable(context.Background(), &dynamodb.CreateTableInput{
		TableName: &table,
		AttributeDefinitions: []ddbTypes.AttributeDefinition{
			{AttributeName: awsString("PK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
			{AttributeName: awsString("SK"), AttributeType: ddbTypes.ScalarAttributeTypeS},
		},
		KeySchema: []ddbTypes.KeySchemaElement{
			{AttributeName: awsString("PK"), KeyType: ddbTypes.KeyTypeHash},
			{AttributeName: awsString("SK"), KeyType: ddbTypes.KeyTypeRange},
		},
		BillingMode: ddbTypes.BillingModePayPerRequest,
	})
	var re *ddbTypes.ResourceInUseException
	if err != nil && !errors.As(err, &re) {
		log.Fatalf("Failed to create table %s: %v", table, err)
	}
}

func awsString(s string) *string { return &s }
func awsBool(b bool) *bool       { return &b }
