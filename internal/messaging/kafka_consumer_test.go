package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/rivalbet/settlement-service/internal/mocks"
	"github.com/rivalbet/settlement-service/internal/models"
)

// testConsumerSetup is a helper struct to hold test dependencies
type testConsumerSetup struct {
	mockSettler  *mocks.MockGameSettler
	mockIngester *mocks.MockFightIngester
	logger       zerolog.Logger
	ctrl         *gomock.Controller
}

// setupTestConsumer creates mocked consumer dependencies
func setupTestConsumer(t *testing.T) *testConsumerSetup {
	ctrl := gomock.NewController(t)
	return &testConsumerSetup{
		mockSettler:  mocks.NewMockGameSettler(ctrl),
		mockIngester: mocks.NewMockFightIngester(ctrl),
		logger:       zerolog.Nop(),
		ctrl:         ctrl,
	}
}

// cleanup cleans up test resources
func (s *testConsumerSetup) cleanup() {
	s.ctrl.Finish()
}

// TestNewGameResultConsumer tests consumer creation
func TestNewGameResultConsumer(t *testing.T) {
	setup := setupTestConsumer(t)
	defer setup.cleanup()

	config := KafkaConsumerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "game-results",
		GroupID: "test-group",
	}

	consumer := NewGameResultConsumer(config, setup.mockSettler, setup.logger)

	assert.NotNil(t, consumer)
	assert.NotNil(t, consumer.reader)
	assert.Equal(t, config.Topic, consumer.reader.Config().Topic)
	assert.Equal(t, config.GroupID, consumer.reader.Config().GroupID)

	consumer.Close()
}

// TestGameResultConsumer_ProcessMessage tests a valid game result message
func TestGameResultConsumer_ProcessMessage(t *testing.T) {
	setup := setupTestConsumer(t)
	defer setup.cleanup()

	consumer := &GameResultConsumer{settler: setup.mockSettler, logger: setup.logger}

	payload, err := json.Marshal(models.GameResultMessage{
		GameID:    "game-1",
		Sport:     "nba",
		Status:    models.GameStatusFinal,
		Result:    &models.GameResult{Winner: "home", HomeScore: 110, AwayScore: 102},
		Timestamp: time.Now().UTC(),
	})
	require.NoError(t, err)

	setup.mockSettler.EXPECT().
		ApplyGameResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg *models.GameResultMessage) error {
			assert.Equal(t, "game-1", msg.GameID)
			assert.Equal(t, models.GameStatusFinal, msg.Status)
			require.NotNil(t, msg.Result)
			assert.Equal(t, "home", msg.Result.Winner)
			return nil
		})

	err = consumer.processMessage(context.Background(), kafka.Message{Value: payload})
	require.NoError(t, err)
}

// TestGameResultConsumer_ProcessMessage_InvalidJSON tests malformed payloads
func TestGameResultConsumer_ProcessMessage_InvalidJSON(t *testing.T) {
	setup := setupTestConsumer(t)
	defer setup.cleanup()

	consumer := &GameResultConsumer{settler: setup.mockSettler, logger: setup.logger}

	err := consumer.processMessage(context.Background(), kafka.Message{Value: []byte("{not json")})
	assert.Error(t, err)
}

// TestGameResultConsumer_ProcessMessage_MissingGameID tests payload validation
func TestGameResultConsumer_ProcessMessage_MissingGameID(t *testing.T) {
	setup := setupTestConsumer(t)
	defer setup.cleanup()

	consumer := &GameResultConsumer{settler: setup.mockSettler, logger: setup.logger}

	err := consumer.processMessage(context.Background(), kafka.Message{Value: []byte(`{"status":"final"}`)})
	assert.Error(t, err)
}

// TestFightResultConsumer_ProcessMessage tests a valid fight result message
func TestFightResultConsumer_ProcessMessage(t *testing.T) {
	setup := setupTestConsumer(t)
	defer setup.cleanup()

	consumer := &FightResultConsumer{ingester: setup.mockIngester, logger: setup.logger}

	payload, err := json.Marshal(models.FightResultMessage{
		Result: models.FightResult{
			FightID:    "fight-1",
			EventID:    "event-1",
			FightOrder: 1,
			Completed:  true,
			WinnerID:   "fighter-a",
			Method:     "KO",
			Round:      2,
		},
		Timestamp: time.Now().UTC(),
	})
	require.NoError(t, err)

	setup.mockIngester.EXPECT().
		IngestFightResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, result *models.FightResult) error {
			assert.Equal(t, "fight-1", result.FightID)
			assert.Equal(t, "event-1", result.EventID)
			assert.Equal(t, "KO", result.Method)
			return nil
		})

	err = consumer.processMessage(context.Background(), kafka.Message{Value: payload})
	require.NoError(t, err)
}

// TestFightResultConsumer_ProcessMessage_MissingIDs tests payload validation
func TestFightResultConsumer_ProcessMessage_MissingIDs(t *testing.T) {
	setup := setupTestConsumer(t)
	defer setup.cleanup()

	consumer := &FightResultConsumer{ingester: setup.mockIngester, logger: setup.logger}

	err := consumer.processMessage(context.Background(), kafka.Message{Value: []byte(`{"result":{"method":"KO"}}`)})
	assert.Error(t, err)
}
