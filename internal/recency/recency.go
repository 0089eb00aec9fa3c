// Package recency assigns frontline geometry to one of five color buckets
// based on elapsed days since the data point was last confirmed.
package recency

import "time"

// Token is a discrete recency bucket. Lower values are more recent.
type Token int

const (
	// TokenWeek covers data confirmed within the last 7 days.
	TokenWeek Token = iota
	// TokenFortnight covers 8-14 days.
	TokenFortnight
	// TokenMonth covers 15-30 days.
	TokenMonth
	// TokenTwoMonths covers 31-60 days.
	TokenTwoMonths
	// TokenStale covers everything older.
	TokenStale
)

// hex colors, most alarming first
var tokenColors = [...]string{
	TokenWeek:      "#e03131",
	TokenFortnight: "#e8590c",
	TokenMonth:     "#f08c00",
	TokenTwoMonths: "#fab005",
	TokenStale:     "#868e96",
}

// Hex returns the CSS color for the token.
func (t Token) Hex() string {
	if t < TokenWeek || t > TokenStale {
		return tokenColors[TokenStale]
	}
	return tokenColors[t]
}

// ClockFunc supplies the current time; tests inject a fixed clock.
type ClockFunc func() time.Time

// Classifier buckets timestamps against an injected clock.
type Classifier struct {
	Now ClockFunc
}

// New returns a classifier on the real clock.
func New() *Classifier {
	return &Classifier{Now: time.Now}
}

// Classify buckets asOf against the classifier's clock.
func (c *Classifier) Classify(asOf time.Time) Token {
	return ClassifyAt(c.Now(), asOf)
}

// ClassifyAt buckets asOf against an explicit now. Boundary day counts
// (7, 14, 30, 60) fall into the lower, more recent bucket. Pure and
// deterministic given now.
func ClassifyAt(now, asOf time.Time) Token {
	days := int(now.Sub(asOf).Hours() / 24)
	switch {
	case days <= 7:
		return TokenWeek
	case days <= 14:
		return TokenFortnight
	case days <= 30:
		return TokenMonth
	case days <= 60:
		return TokenTwoMonths
	default:
		return TokenStale
	}
}
