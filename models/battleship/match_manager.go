package battleship

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

// Matches idle for this long are dropped by the cleanup loop.
const defaultMatchIdleTimeout = time.Minute * 30

type MatchManager interface {
	CreateMatch(difficulty uint8) (*Match, error)
	FetchMatch(matchUuid string) (*Match, error)
	RestartMatch(old *Match) (*Match, error)
	TerminateMatch(matchUuid string)
	CleanupPeriodically()
}

type BattleshipMatchManager struct {
	cfg             Config
	matches         map[string]*Match
	idleTimeout     time.Duration
	cleanupInterval time.Duration
	mu              sync.RWMutex
}

var _ MatchManager = (*BattleshipMatchManager)(nil)

func NewBattleshipMatchManager(cfg Config) *BattleshipMatchManager {
	return &BattleshipMatchManager{
		cfg:             cfg,
		matches:         make(map[string]*Match, 10),
		idleTimeout:     defaultMatchIdleTimeout,
		cleanupInterval: time.Minute * 5,
	}
}

func (bmm *BattleshipMatchManager) CreateMatch(difficulty uint8) (*Match, error) {
	match, err := NewMatch(bmm.cfg, difficulty)
	if err != nil {
		return nil, err
	}

	if err := bmm.register(match); err != nil {
		return nil, err
	}
	return match, nil
}

func (bmm *BattleshipMatchManager) register(match *Match) error {
	bmm.mu.Lock()
	defer bmm.mu.Unlock()

	if _, prs := bmm.matches[match.Uuid()]; prs {
		return cerr.ErrMatchUuidTaken(match.Uuid())
	}
	bmm.matches[match.Uuid()] = match
	return nil
}

func (bmm *BattleshipMatchManager) FetchMatch(matchUuid string) (*Match, error) {
	bmm.mu.RLock()
	match, prs := bmm.matches[matchUuid]
	bmm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrMatchNotExist(matchUuid)
	}

	return match, nil
}

// RestartMatch replaces a match with a fresh one of the same difficulty.
// This is the only way out of the Finished phase. old does not have to be
// registered anymore; the cleanup loop may already have dropped it.
func (bmm *BattleshipMatchManager) RestartMatch(old *Match) (*Match, error) {
	if old == nil {
		return nil, cerr.ErrMatchNotExists
	}

	match, err := NewMatch(bmm.cfg, old.Difficulty())
	if err != nil {
		return nil, err
	}

	bmm.TerminateMatch(old.Uuid())
	if err := bmm.register(match); err != nil {
		return nil, err
	}
	return match, nil
}

func (bmm *BattleshipMatchManager) TerminateMatch(matchUuid string) {
	bmm.mu.Lock()
	delete(bmm.matches, matchUuid)
	bmm.mu.Unlock()
}

func (bmm *BattleshipMatchManager) MatchCount() int {
	bmm.mu.RLock()
	defer bmm.mu.RUnlock()
	return len(bmm.matches)
}

func (bmm *BattleshipMatchManager) removeStale(now time.Time) []string {
	bmm.mu.Lock()
	defer bmm.mu.Unlock()

	removed := make([]string, 0)
	for matchUuid, match := range bmm.matches {
		if now.Sub(match.LastActivity()) > bmm.idleTimeout {
			delete(bmm.matches, matchUuid)
			removed = append(removed, matchUuid)
		}
	}
	return removed
}

// Matches whose session never terminated them (crashed clients) are dropped
// once nobody has touched them for idleTimeout.
func (bmm *BattleshipMatchManager) CleanupPeriodically() {
	for {
		time.Sleep(bmm.cleanupInterval)

		for _, matchUuid := range bmm.removeStale(time.Now()) {
			log.Info().Str("match_uuid", matchUuid).Msg("removed stale match")
		}
	}
}
