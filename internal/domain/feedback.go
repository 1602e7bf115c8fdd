package domain

import "time"

// Sentiment is the owner's rating of how a closed ticket was handled.
type Sentiment string

const (
	SentimentExcellent Sentiment = "Excellent"
	SentimentGood      Sentiment = "Good"
	SentimentMedium    Sentiment = "Medium"
	SentimentPoor      Sentiment = "Poor"
	SentimentVeryBad   Sentiment = "Very Bad"
)

var sentimentDeltas = map[Sentiment]float64{
	SentimentExcellent: 0.5,
	SentimentGood:      0.3,
	SentimentMedium:    0,
	SentimentPoor:      -0.5,
	SentimentVeryBad:   -1.0,
}

// Valid reports whether s is one of the five accepted sentiments.
func (s Sentiment) Valid() bool {
	_, ok := sentimentDeltas[s]
	return ok
}

// Delta is the score adjustment one feedback entry of this sentiment contributes.
func (s Sentiment) Delta() float64 {
	return sentimentDeltas[s]
}

// Feedback is post-closure sentiment supplied by the ticket owner.
type Feedback struct {
	ID        int64
	TicketID  int64
	Sentiment Sentiment
	Comment   string
	CreatedAt time.Time
}
