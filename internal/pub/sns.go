// Package pub emits setting-change events so other processes can drop
// their own caches. Publishing is strictly after-the-fact: the write has
// already committed by the time an event goes out.
package pub

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	json "github.com/goccy/go-json"
)

// ChangeEvent describes one committed setting write. TenantID is 0 for
// the unpartitioned space.
type ChangeEvent struct {
	TenantID int64  `json:"tenant_id"`
	Key      string `json:"key"`
}

func (e ChangeEvent) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

type snsPub struct{ cli *sns.Client }

func NewSNS(c *sns.Client) *snsPub { return &snsPub{cli: c} }

func (s *snsPub) PublishRaw(ctx context.Context, arn string, payload []byte) error {
	_, err := s.cli.Publish(ctx, &sns.PublishInput{
		TopicArn: &arn,
		Message:  aws.String(string(payload)),
		MessageAttributes: map[string]snsTypes.MessageAttributeValue{
			"content-type": {DataType: aws.String("String"), StringValue: aws.String("application/json")},
		},
	})
	return err
}
