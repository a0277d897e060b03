package rabbitmq

import (
	"fmt"
	"math"
	"time"

	"schnorr-batch/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const maxConnectRetries = 7

func ConnectionString(user, password, host string) string {
	return fmt.Sprintf("amqp://%s:%s@%s/", user, password, host)
}

// ConnectToRabbitmq dials with exponential backoff between attempts.
func ConnectToRabbitmq(cfg RabbitmqConfig) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	waitTime := 1 * time.Second

	queueLogger := logger.Default()

	for i := 0; i < maxConnectRetries; i++ {
		conn, err = amqp.Dial(ConnectionString(cfg.User, cfg.Password, cfg.Host))
		if err == nil {
			return conn, nil
		}
		queueLogger.Warnf("Attempt %d failed: %v. Retrying in %v...", i+1, err, waitTime)
		time.Sleep(waitTime)
		waitTime = time.Duration(math.Pow(2, float64(i+1))) * time.Second
	}
	return nil, err
}
