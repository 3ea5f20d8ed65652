package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellar/anchor-platform-sub000/internal/models"
)

func TestKafkaEventPublisher_PublishStatusChanged(t *testing.T) {
	ctx := context.Background()
	txn := depositWithAmounts("t-1", models.StatusCompleted, true)

	tests := []struct {
		name       string
		setupMocks func(w *MockKafkaWriter)
	}{
		{
			name: "publishes keyed event",
			setupMocks: func(w *MockKafkaWriter) {
				w.EXPECT().WriteMessages(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
					require.Len(t, msgs, 1)
					assert.Equal(t, []byte("t-1"), msgs[0].Key)

					var event models.AnchorEvent
					require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
					assert.NotEmpty(t, event.ID)
					assert.Equal(t, models.EventTypeTransactionStatusChanged, event.Type)
					assert.Equal(t, models.Sep24, event.Sep)
					assert.True(t, testNow.Equal(event.Timestamp))
					require.NotNil(t, event.Transaction)
					assert.Equal(t, models.StatusCompleted, event.Transaction.Status)
					return nil
				})
			},
		},
		{
			name: "write failure is swallowed",
			setupMocks: func(w *MockKafkaWriter) {
				w.EXPECT().WriteMessages(ctx, gomock.Any()).Return(errors.New("leader not available"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			writer := NewMockKafkaWriter(ctrl)
			tt.setupMocks(writer)

			NewKafkaEventPublisher(writer, newMockClock()).PublishStatusChanged(ctx, txn)
		})
	}
}

func TestKafkaEventPublisher_NilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		NewKafkaEventPublisher(nil, newMockClock()).PublishStatusChanged(context.Background(), newTxn("t-1", models.Sep6, models.KindDeposit, models.StatusIncomplete))
	})
}
