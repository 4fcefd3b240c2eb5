package kafka

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"log"

	"github.com/Shopify/sarama"
	cluster "github.com/bsm/sarama-cluster"
	"github.com/pkg/errors"
)

// Source implements the sparkify.Source interface using kafka as a data
// source. Each message is expected to hold one json event record. MaxMsgs
// bounds the run: a batch pipeline needs the stream to end, so the source
// returns io.EOF after that many messages.
type Source struct {
	Hosts   []string
	Topics  []string
	Group   string
	MaxMsgs int
	numMsgs int

	consumer *cluster.Consumer
}

// NewSource gets a new Source with the default configuration.
func NewSource() *Source {
	return &Source{
		Hosts:  []string{"localhost:9092"},
		Topics: []string{"events"},
		Group:  "sparkify",
	}
}

// Record returns the decoded value of the next kafka message.
func (s *Source) Record() (map[string]interface{}, error) {
	if s.MaxMsgs > 0 {
		s.numMsgs++
		if s.numMsgs > s.MaxMsgs {
			return nil, io.EOF
		}
	}
	msg, ok := <-s.consumer.Messages()
	if !ok {
		return nil, errors.New("messages channel closed")
	}
	parsed := make(map[string]interface{})
	err := json.Unmarshal(msg.Value, &parsed)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshaling json")
	}
	s.consumer.MarkOffset(msg, "") // mark message as processed
	return parsed, nil
}

// Open initializes the kafka consumer.
func (s *Source) Open() error {
	sarama.Logger = log.New(ioutil.Discard, "", 0)
	config := cluster.NewConfig()
	config.Config.Version = sarama.V0_10_0_0
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Group.Return.Notifications = true

	var err error
	s.consumer, err = cluster.NewConsumer(s.Hosts, s.Group, s.Topics, config)
	if err != nil {
		return errors.Wrap(err, "getting new consumer")
	}

	// consume errors
	go func() {
		for err := range s.consumer.Errors() {
			log.Printf("Error: %s\n", err.Error())
		}
	}()

	// consume notifications
	go func() {
		for ntf := range s.consumer.Notifications() {
			log.Printf("Rebalanced: %+v\n", ntf)
		}
	}()
	return nil
}

// Close closes the underlying kafka consumer.
func (s *Source) Close() error {
	err := s.consumer.Close()
	return errors.Wrap(err, "closing kafka consumer")
}
