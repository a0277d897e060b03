package rabbitmq

import amqp "github.com/rabbitmq/amqp091-go"

type RabbitmqExchangeType string

func (ret RabbitmqExchangeType) String() string {
	return string(ret)
}

const (
	ExchangeFanout  RabbitmqExchangeType = "fanout"
	ExchangeDirect  RabbitmqExchangeType = "direct"
	ExchangeTopic   RabbitmqExchangeType = "topic"
	ExchangeHeaders RabbitmqExchangeType = "headers"
)

// CreateNewExchange declares a durable exchange
func CreateNewExchange(ch *amqp.Channel, exchangeConfig RabbitmqExchangeConfig) error {
	return ch.ExchangeDeclare(
		exchangeConfig.ExchangeName,          // name
		exchangeConfig.ExchangeType.String(), // type
		true,                                 // durable
		false,                                // auto-deleted
		false,                                // internal
		false,                                // no-wait
		nil,                                  // arguments
	)
}

// CreateNewQueue declares a queue with given durability/exclusivity
func CreateNewQueue(ch *amqp.Channel, queueConfig RabbitmqQueueConfig) (amqp.Queue, error) {
	return ch.QueueDeclare(
		queueConfig.QueueName, // name
		queueConfig.Durable,   // durable
		false,                 // delete when unused
		queueConfig.Exclusive, // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
}

// BindQueueToExchange binds a queue to an exchange with a routing key
func BindQueueToExchange(ch *amqp.Channel, queueConfig RabbitmqQueueConfig) error {
	return ch.QueueBind(
		queueConfig.QueueName,       // queue name
		queueConfig.RoutingKey,      // routing key
		queueConfig.ExchangeBinding, // exchange
		false,
		nil,
	)
}

// SetupTopology declares every configured exchange and queue, then binds them.
func SetupTopology(conn *amqp.Connection, cfg RabbitmqConfig) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	for _, exchangeConf := range cfg.Exchanges {
		if err := CreateNewExchange(ch, exchangeConf); err != nil {
			return err
		}
	}

	for _, queueConf := range cfg.Queues {
		if _, err := CreateNewQueue(ch, queueConf); err != nil {
			return err
		}

		if queueConf.ExchangeBinding == "" {
			continue
		}
		if err := BindQueueToExchange(ch, queueConf); err != nil {
			return err
		}
	}

	return nil
}
