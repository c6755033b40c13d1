package push

import (
	"context"
	"encoding/json"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSSender publishes to SNS platform endpoints. A user's PushToken is
// the endpoint ARN registered for their device by the mobile client.
type SNSSender struct {
	client *sns.Client
}

func NewSNSSender(ctx context.Context, region string) (*SNSSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SNSSender{client: sns.NewFromConfig(cfg)}, nil
}

type snsPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

func (s *SNSSender) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(snsPayload{
		Title: msg.Title,
		Body:  msg.Body,
		Data:  msg.Data,
	})
	if err != nil {
		return err
	}

	message := string(payload)
	_, err = s.client.Publish(ctx, &sns.PublishInput{
		TargetArn: &msg.Token,
		Message:   &message,
	})
	return err
}
