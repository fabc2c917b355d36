package kafka_test

import (
	"equiplend/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestMessage_ToKafkaMessage(t *testing.T) {
	msg := kafka.Message{Key: "42", Value: payload{Name: "Zoom", Count: 2}}

	out, err := msg.ToKafkaMessage()

	require.NoError(t, err)
	assert.Equal(t, []byte("42"), out.Key)
	assert.JSONEq(t, `{"name":"Zoom","count":2}`, string(out.Value))
}

func TestMessage_ToKafkaMessage_Unsupported(t *testing.T) {
	msg := kafka.Message{Key: "1", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()

	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	got, err := kafka.Decode[payload](kafkaGo.Message{Value: []byte(`{"name":"Tripod1","count":1}`)})

	require.NoError(t, err)
	assert.Equal(t, payload{Name: "Tripod1", Count: 1}, got)

	_, err = kafka.Decode[payload](kafkaGo.Message{Value: []byte(`not json`)})
	assert.Error(t, err)
}
