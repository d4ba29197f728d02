// Package rewards tracks eco points earned on purchases.
package rewards

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrUserNotFound = errors.New("user not found")

// Level is a reward tier with progress (0-100) toward the next one.
type Level struct {
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
}

// LevelFor maps a point balance to its reward tier.
func LevelFor(points int) Level {
	p := float64(points)
	switch {
	case points >= 2000:
		return Level{Name: "Eco Champion", Progress: 100}
	case points >= 1000:
		return Level{Name: "Green Guardian", Progress: (p - 1000) / 10}
	case points >= 500:
		return Level{Name: "Earth Friend", Progress: (p - 500) / 5}
	default:
		return Level{Name: "Eco Starter", Progress: max(p, 0) / 5}
	}
}

type Purchase struct {
	ID       string          `json:"id"`
	Product  string          `json:"product"`
	Points   int             `json:"points"`
	CO2Saved decimal.Decimal `json:"co2Saved"`
	Date     time.Time       `json:"date"`
}

// Summary is a user's rewards overview.
type Summary struct {
	UserID      int64           `json:"userId"`
	Name        string          `json:"name"`
	TotalPoints int             `json:"totalPoints"`
	CO2Saved    decimal.Decimal `json:"co2Saved"`
	Level       Level           `json:"level"`
	Purchases   []Purchase      `json:"purchaseHistory"`
}

// Summarize totals a purchase history; purchases come back newest first.
func Summarize(userID int64, name string, history []Purchase) Summary {
	s := Summary{
		UserID:    userID,
		Name:      name,
		CO2Saved:  decimal.Zero,
		Purchases: slices.Clone(history),
	}
	for _, p := range history {
		s.TotalPoints += p.Points
		s.CO2Saved = s.CO2Saved.Add(p.CO2Saved)
	}
	slices.SortStableFunc(s.Purchases, func(a, b Purchase) int {
		return b.Date.Compare(a.Date)
	})
	s.Level = LevelFor(s.TotalPoints)
	return s
}

type account struct {
	name      string
	purchases []Purchase
}

// Ledger is an in-memory store of accounts and their purchases.
type Ledger struct {
	mu       sync.RWMutex
	accounts map[int64]*account
}

func NewLedger() *Ledger {
	return &Ledger{accounts: make(map[int64]*account)}
}

// AddAccount registers a user; re-adding keeps existing purchases.
func (l *Ledger) AddAccount(userID int64, name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if a, ok := l.accounts[userID]; ok {
		a.name = name
		return
	}
	l.accounts[userID] = &account{name: name}
}

// Record appends a purchase to a user's history and returns it with an ID.
func (l *Ledger) Record(ctx context.Context, userID int64, p Purchase) (Purchase, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.accounts[userID]
	if !ok {
		return Purchase{}, ErrUserNotFound
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	a.purchases = append(a.purchases, p)
	return p, nil
}

// Summary returns the rewards overview for a user.
func (l *Ledger) Summary(ctx context.Context, userID int64) (Summary, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.accounts[userID]
	if !ok {
		return Summary{}, ErrUserNotFound
	}
	return Summarize(userID, a.name, a.purchases), nil
}

// Standing is one row of the points leaderboard.
type Standing struct {
	UserID   int64           `json:"id"`
	Name     string          `json:"name"`
	Points   int             `json:"points"`
	CO2Saved decimal.Decimal `json:"co2Saved"`
}

// TopUsers returns up to n users by points, highest first.
func (l *Ledger) TopUsers(ctx context.Context, n int) []Standing {
	l.mu.RLock()
	standings := make([]Standing, 0, len(l.accounts))
	for id, a := range l.accounts {
		s := Summarize(id, a.name, a.purchases)
		standings = append(standings, Standing{UserID: id, Name: a.name, Points: s.TotalPoints, CO2Saved: s.CO2Saved})
	}
	l.mu.RUnlock()

	slices.SortFunc(standings, func(a, b Standing) int {
		if a.Points != b.Points {
			return b.Points - a.Points
		}
		switch {
		case a.UserID < b.UserID:
			return -1
		case a.UserID > b.UserID:
			return 1
		}
		return 0
	})

	if n >= 0 && len(standings) > n {
		standings = standings[:n]
	}
	return standings
}

// NewDemoLedger returns a ledger with the storefront's sample accounts.
func NewDemoLedger() *Ledger {
	l := NewLedger()
	ctx := context.Background()
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }

	l.AddAccount(1, "John Doe")
	for _, p := range []Purchase{
		{Product: "Organic Apples", Points: 50, CO2Saved: decimal.NewFromFloat(2.1), Date: day(15)},
		{Product: "Eco Water Bottle", Points: 100, CO2Saved: decimal.NewFromFloat(5.2), Date: day(10)},
		{Product: "Bamboo Toothbrush", Points: 25, CO2Saved: decimal.NewFromFloat(1.8), Date: day(8)},
		{Product: "Solar Charger", Points: 150, CO2Saved: decimal.NewFromFloat(8.5), Date: day(5)},
		{Product: "Reusable Bag", Points: 75, CO2Saved: decimal.NewFromFloat(3.2), Date: day(3)},
	} {
		l.Record(ctx, 1, p)
	}

	l.AddAccount(2, "Alice Johnson")
	l.Record(ctx, 2, Purchase{Product: "Solar Phone Charger", Points: 2500, CO2Saved: decimal.NewFromFloat(89.2), Date: day(12)})
	l.AddAccount(3, "Bob Smith")
	l.Record(ctx, 3, Purchase{Product: "Eco-Friendly Water Bottle", Points: 1800, CO2Saved: decimal.NewFromFloat(67.4), Date: day(11)})

	return l
}
