package mail

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"order-notifier/internal/notify"
)

type MockSES struct {
	mock.Mock
}

func (m *MockSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sesv2.SendEmailOutput)
	return out, args.Error(1)
}

func TestSES_Send(t *testing.T) {
	client := new(MockSES)
	client.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *sesv2.SendEmailInput) bool {
		return aws.ToString(in.FromEmailAddress) == "noreply@example.com" &&
			len(in.Destination.ToAddresses) == 1 &&
			in.Destination.ToAddresses[0] == "ops@example.com" &&
			aws.ToString(in.Content.Simple.Subject.Data) == "Objet" &&
			aws.ToString(in.Content.Simple.Body.Text.Data) == "Corps"
	})).Return(&sesv2.SendEmailOutput{MessageId: aws.String("m-1")}, nil).Once()

	s := &SES{client: client}
	err := s.Send(context.Background(), notify.Message{
		From:    "noreply@example.com",
		To:      "ops@example.com",
		Subject: "Objet",
		Body:    "Corps",
	})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestSES_SendError(t *testing.T) {
	sesErr := errors.New("MessageRejected")
	client := new(MockSES)
	client.On("SendEmail", mock.Anything, mock.Anything).Return(nil, sesErr)

	s := &SES{client: client}
	err := s.Send(context.Background(), notify.Message{To: "ops@example.com"})
	assert.ErrorIs(t, err, sesErr)
}

func TestSendEmailInput_Charset(t *testing.T) {
	in := sendEmailInput(notify.Message{Subject: "é", Body: "è"})
	assert.Equal(t, charset, aws.ToString(in.Content.Simple.Subject.Charset))
	assert.Equal(t, charset, aws.ToString(in.Content.Simple.Body.Text.Charset))
	assert.Nil(t, in.Content.Simple.Body.Html)
}
