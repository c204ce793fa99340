package upgrade

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/starfall/event"
	"github.com/lixenwraith/starfall/status"
)

// Purchase rejections, none of them mutate the ledger
var (
	ErrUnknownUpgrade      = errors.New("unknown upgrade")
	ErrAlreadyPurchased    = errors.New("upgrade already purchased")
	ErrPrerequisitesUnmet  = errors.New("prerequisites not met")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// Options configures a Ledger
type Options struct {
	StartingCredits int

	Events *event.EventQueue
	Status *status.Registry
	Logger *zerolog.Logger
}

// Ledger gates upgrades behind credits and prerequisites
// History is append-only; each upgrade applies at most once
type Ledger struct {
	catalog   *Catalog
	loadout   *Loadout
	credits   int
	history   []string
	purchased map[string]struct{}

	events *event.EventQueue
	log    zerolog.Logger

	statCredits   *atomic.Int64
	statPurchases *atomic.Int64
}

// NewLedger creates a ledger applying upgrades to loadout
func NewLedger(catalog *Catalog, loadout *Loadout, opts Options) *Ledger {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "upgrade").Logger()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}
	if loadout == nil {
		loadout = &Loadout{}
	}

	l := &Ledger{
		catalog:       catalog,
		loadout:       loadout,
		credits:       max(opts.StartingCredits, 0),
		purchased:     make(map[string]struct{}),
		events:        opts.Events,
		log:           log,
		statCredits:   reg.Ints.Get("economy.credits"),
		statPurchases: reg.Ints.Get("economy.purchases"),
	}
	l.statCredits.Store(int64(l.credits))
	return l
}

// Catalog returns the upgrade tree
func (l *Ledger) Catalog() *Catalog {
	return l.catalog
}

// Credits returns the balance
func (l *Ledger) Credits() int {
	return l.credits
}

// AddCredits increases the balance, non-positive amounts are ignored
func (l *Ledger) AddCredits(amount int) {
	if amount <= 0 {
		return
	}
	l.credits += amount
	l.statCredits.Store(int64(l.credits))
	l.events.Emit(event.EventCreditsChanged, &event.CreditsChangedPayload{Delta: amount, Balance: l.credits})
}

// Check reports why id cannot be purchased now, nil when it can
func (l *Ledger) Check(id string) (*Upgrade, error) {
	u, ok := l.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUpgrade, id)
	}
	if l.IsPurchased(id) {
		return u, fmt.Errorf("%w: %q", ErrAlreadyPurchased, id)
	}
	for _, pre := range u.Prerequisites {
		if !l.IsPurchased(pre) {
			return u, fmt.Errorf("%w: %q requires %q", ErrPrerequisitesUnmet, id, pre)
		}
	}
	if l.credits < u.Cost {
		return u, fmt.Errorf("%w: %q costs %d, have %d", ErrInsufficientCredits, id, u.Cost, l.credits)
	}
	return u, nil
}

// Purchase debits the cost, records id and applies the upgrade once
func (l *Ledger) Purchase(id string) error {
	u, err := l.Check(id)
	if err != nil {
		l.log.Debug().Err(err).Str("upgrade", id).Msg("purchase rejected")
		return err
	}

	l.credits -= u.Cost
	l.history = append(l.history, id)
	l.purchased[id] = struct{}{}
	if u.Apply != nil {
		u.Apply(l.loadout)
	}

	l.statCredits.Store(int64(l.credits))
	l.statPurchases.Add(1)
	l.log.Info().Str("upgrade", id).Int("cost", u.Cost).Int("balance", l.credits).Msg("upgrade purchased")

	l.events.Emit(event.EventUpgradePurchased, &event.UpgradePurchasedPayload{
		ID:      u.ID,
		Name:    u.Name,
		Cost:    u.Cost,
		Balance: l.credits,
	})
	if u.Cost > 0 {
		l.events.Emit(event.EventCreditsChanged, &event.CreditsChangedPayload{Delta: -u.Cost, Balance: l.credits})
	}
	return nil
}

// IsPurchased reports whether id is in history
func (l *Ledger) IsPurchased(id string) bool {
	_, ok := l.purchased[id]
	return ok
}

// History returns purchased ids in purchase order
func (l *Ledger) History() []string {
	out := make([]string, len(l.history))
	copy(out, l.history)
	return out
}

// Available returns unpurchased upgrades whose prerequisites are met, affordable or not
func (l *Ledger) Available() []*Upgrade {
	var out []*Upgrade
	for _, u := range l.catalog.All() {
		if l.IsPurchased(u.ID) {
			continue
		}
		met := true
		for _, pre := range u.Prerequisites {
			if !l.IsPurchased(pre) {
				met = false
				break
			}
		}
		if met {
			out = append(out, u)
		}
	}
	return out
}
