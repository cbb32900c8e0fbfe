package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/IBM/sarama"
)

// GameEvent is a completed game reported through the telemetry pipeline
type GameEvent struct {
	PlayerID    int64  `json:"player_id"`
	Username    string `json:"username"`
	Difficulty  string `json:"difficulty"`
	TimeSeconds int    `json:"time_seconds"`
	Mistakes    int    `json:"mistakes"`
}

var playerPrefixes = []string{
	"Phoenix", "Shadow", "Thunder", "Storm", "Blaze", "Ninja", "Dragon", "Wolf", "Hawk", "Viper",
	"Ghost", "Titan", "Frost", "Cyber", "Nova", "Raven", "Omega", "Alpha", "Delta", "Sigma",
}

var difficulties = []string{"easy", "medium", "hard"}

func getPlayerName(idx int) string {
	prefixIdx := idx % len(playerPrefixes)
	suffix := idx/len(playerPrefixes) + 1
	return fmt.Sprintf("%s%d", playerPrefixes[prefixIdx], suffix)
}

// randomEvent fabricates a plausible completed game for a player index.
// Times cluster around the per-difficulty targets so the produced scores
// spread out like real play.
func randomEvent(playerIdx int) GameEvent {
	difficulty := difficulties[rand.Intn(len(difficulties))]

	var timeSeconds int
	switch difficulty {
	case "easy":
		timeSeconds = rand.Intn(900) + 120
	case "medium":
		timeSeconds = rand.Intn(1200) + 240
	default:
		timeSeconds = rand.Intn(1800) + 400
	}

	return GameEvent{
		PlayerID:    int64(playerIdx + 1),
		Username:    getPlayerName(playerIdx),
		Difficulty:  difficulty,
		TimeSeconds: timeSeconds,
		Mistakes:    rand.Intn(5),
	}
}

func main() {
	// Command line flags
	brokers := flag.String("brokers", "localhost:9094", "Kafka brokers (comma-separated)")
	topic := flag.String("topic", "arena-games", "Kafka topic")
	totalPlayers := flag.Int("players", 1000, "Total number of players to simulate")
	gamesPerSecond := flag.Int("rate", 100, "Games per second")
	duration := flag.Duration("duration", 0, "Duration to run (0 = forever)")
	flag.Parse()

	brokerList := strings.Split(*brokers, ",")

	fmt.Println("Sudoku arena game producer")
	fmt.Printf("  Brokers:       %s\n", *brokers)
	fmt.Printf("  Topic:         %s\n", *topic)
	fmt.Printf("  Players:       %d\n", *totalPlayers)
	fmt.Printf("  Games/sec:     %d\n", *gamesPerSecond)
	fmt.Println()

	// Configure Sarama producer
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Flush.Frequency = 100 * time.Millisecond
	config.Producer.Flush.Messages = 100
	config.Producer.Return.Successes = true
	config.Producer.Return.Errors = true

	// Create producer
	producer, err := sarama.NewAsyncProducer(brokerList, config)
	if err != nil {
		log.Fatalf("Failed to create producer: %v", err)
	}
	defer producer.Close()

	// Handle producer errors and successes
	var successCount, errorCount int64
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range producer.Successes() {
			atomic.AddInt64(&successCount, 1)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for err := range producer.Errors() {
			atomic.AddInt64(&errorCount, 1)
			log.Printf("Producer error: %v", err)
		}
	}()

	// Handle shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})

	// Send message helper
	sendEvent := func(event GameEvent) {
		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal message: %v", err)
			return
		}

		msg := &sarama.ProducerMessage{
			Topic: *topic,
			Key:   sarama.StringEncoder(fmt.Sprintf("%d", event.PlayerID)),
			Value: sarama.ByteEncoder(data),
		}

		select {
		case producer.Input() <- msg:
		case <-done:
			return
		}
	}

	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	interval := time.Second / time.Duration(*gamesPerSecond)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	statsTicker := time.NewTicker(5 * time.Second)
	defer statsTicker.Stop()

	var endTime time.Time
	if *duration > 0 {
		endTime = time.Now().Add(*duration)
	}

	var gameCount int64

	shutdown := func(reason string) {
		fmt.Printf("\n\n%s\n", reason)
		close(done)
		producer.AsyncClose()
		wg.Wait()
		fmt.Printf("\nCompleted. Sent: %d, Errors: %d\n", atomic.LoadInt64(&successCount), atomic.LoadInt64(&errorCount))
	}

	for {
		select {
		case <-sigChan:
			shutdown("Shutting down...")
			return

		case <-ticker.C:
			if *duration > 0 && time.Now().After(endTime) {
				shutdown("Duration reached, shutting down...")
				return
			}

			// Active players finish games more often than the long tail
			var playerIdx int
			if rand.Intn(100) < 70 {
				playerIdx = rand.Intn(20)
			} else {
				playerIdx = rand.Intn(*totalPlayers-20) + 20
			}

			sendEvent(randomEvent(playerIdx))
			atomic.AddInt64(&gameCount, 1)

		case <-statsTicker.C:
			games := atomic.LoadInt64(&gameCount)
			success := atomic.LoadInt64(&successCount)
			errors := atomic.LoadInt64(&errorCount)
			fmt.Printf("[%s] Games: %d | Sent: %d | Errors: %d\n",
				time.Now().Format("15:04:05"),
				games,
				success,
				errors,
			)
		}
	}
}
