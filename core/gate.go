package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/asterix-bot/storage-bot/common/metrics"
	"github.com/asterix-bot/storage-bot/config"
	"github.com/asterix-bot/storage-bot/database"
	"github.com/asterix-bot/storage-bot/pkg/deeplink"
)

// Visitor is the user behind an update and the private chat to answer in.
type Visitor struct {
	UserID    int64
	ChatID    int64
	Username  string
	FirstName string
}

type Outcome int

const (
	OutcomeWelcome Outcome = iota
	OutcomeDelivered
	OutcomeBanned
	OutcomeJoinRequired
	OutcomeInvalidLink
	OutcomeNotFound
	OutcomeResults
	OutcomeNoResults
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWelcome:
		return "welcome"
	case OutcomeDelivered:
		return "delivered"
	case OutcomeBanned:
		return "banned"
	case OutcomeJoinRequired:
		return "join_required"
	case OutcomeInvalidLink:
		return "invalid_link"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeResults:
		return "results"
	case OutcomeNoResults:
		return "no_results"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

type Result struct {
	Outcome   Outcome
	Missing   []config.RequiredChannel // set for OutcomeJoinRequired
	Token     string                   // deep link token to resume after joining
	MessageID int
	Matches   []database.Match
	Files     []database.File
}

type SearchConfig struct {
	Cutoff int
	Limit  int
}

// Gate runs every user facing action through the same checks:
// the user is recorded, banned users stop there, non members get the join prompt,
// and only then is the action performed.
type Gate struct {
	ledger Ledger
	oracle *Oracle
	relay  *Relay
	search SearchConfig
	obs    *metrics.Observer
}

func NewGate(ledger Ledger, oracle *Oracle, relay *Relay, search SearchConfig, obs *metrics.Observer) *Gate {
	return &Gate{ledger: ledger, oracle: oracle, relay: relay, search: search, obs: obs}
}

// admit returns a non nil Result when the visitor may not go further.
func (g *Gate) admit(ctx context.Context, v Visitor) (*Result, error) {
	if err := g.ledger.RecordUser(ctx, v.UserID, v.Username, v.FirstName); err != nil {
		log.FromContext(ctx).Error("Failed to record user", "user", v.UserID, "error", err)
	}
	banned, err := g.ledger.IsBanned(ctx, v.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ban status: %w", err)
	}
	if banned {
		return &Result{Outcome: OutcomeBanned}, nil
	}
	if missing := g.oracle.Check(ctx, v.UserID); len(missing) > 0 {
		return &Result{Outcome: OutcomeJoinRequired, Missing: missing}, nil
	}
	return nil, nil
}

// Start handles /start with an optional deep link token, and the "I Joined" button.
func (g *Gate) Start(ctx context.Context, v Visitor, token string) (Result, error) {
	stop, err := g.admit(ctx, v)
	if err != nil {
		return Result{}, err
	}
	if stop != nil {
		if stop.Outcome == OutcomeJoinRequired && token != "" {
			if id, err := deeplink.Decode(token); err == nil {
				stop.Token = deeplink.Encode(id)
			}
		}
		return *stop, nil
	}
	if token == "" {
		return Result{Outcome: OutcomeWelcome}, nil
	}
	id, err := deeplink.Decode(token)
	if err != nil {
		return Result{Outcome: OutcomeInvalidLink}, nil
	}
	return g.deliver(ctx, v, id), nil
}

// Fetch delivers a file picked from a result or menu keyboard.
func (g *Gate) Fetch(ctx context.Context, v Visitor, messageID int) (Result, error) {
	stop, err := g.admit(ctx, v)
	if err != nil {
		return Result{}, err
	}
	if stop != nil {
		return *stop, nil
	}
	if messageID <= 0 {
		return Result{Outcome: OutcomeInvalidLink}, nil
	}
	return g.deliver(ctx, v, messageID), nil
}

func (g *Gate) deliver(ctx context.Context, v Visitor, messageID int) Result {
	if err := g.relay.Deliver(ctx, v.ChatID, messageID); err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.FromContext(ctx).Error("Unexpected relay error", "error", err)
		}
		return Result{Outcome: OutcomeNotFound, MessageID: messageID}
	}
	return Result{Outcome: OutcomeDelivered, MessageID: messageID}
}

// Search ranks registered files for the visitor. A single match is delivered right away.
func (g *Gate) Search(ctx context.Context, v Visitor, query string) (Result, error) {
	stop, err := g.admit(ctx, v)
	if err != nil {
		return Result{}, err
	}
	if stop != nil {
		return *stop, nil
	}
	matches, err := g.ledger.Search(ctx, v.UserID, query, database.SearchOptions{
		Cutoff: g.search.Cutoff,
		Limit:  g.search.Limit,
	})
	if err != nil {
		return Result{}, fmt.Errorf("search failed: %w", err)
	}
	g.obs.RecordSearch(len(matches))
	switch len(matches) {
	case 0:
		return Result{Outcome: OutcomeNoResults}, nil
	case 1:
		return g.deliver(ctx, v, matches[0].File.MessageID), nil
	}
	return Result{Outcome: OutcomeResults, Matches: matches}, nil
}

// Latest lists the newest files of a category for the menu buttons.
func (g *Gate) Latest(ctx context.Context, v Visitor, category string, limit int) (Result, error) {
	stop, err := g.admit(ctx, v)
	if err != nil {
		return Result{}, err
	}
	if stop != nil {
		return *stop, nil
	}
	files, err := g.ledger.LatestFiles(ctx, category, limit)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list files: %w", err)
	}
	if len(files) == 0 {
		return Result{Outcome: OutcomeNoResults}, nil
	}
	return Result{Outcome: OutcomeResults, Files: files}, nil
}
