// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps the personal and community search lists.
// Persistence failures are reported as warnings and swallowed; losing
// a history write never fails a search.
package history

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/richmalloy/naturedash/internal/storage"
	"github.com/richmalloy/naturedash/pkg/types"
)

const (
	personalKey  = "naturenear-recent-searches"
	communityKey = "community-searches"

	defaultMaxPersonal  = 10
	defaultMaxCommunity = 20
)

// Store manages both search lists on top of a durable key/value store.
type Store struct {
	storage      storage.Store
	maxPersonal  int
	maxCommunity int
	out          io.Writer
	now          func() time.Time

	sessionOnce sync.Once
	sessionID   string
}

// NewStore returns a history store writing warnings to out.
func NewStore(backing storage.Store, cfg types.HistoryConfig, out io.Writer) *Store {
	maxPersonal := cfg.MaxPersonal
	if maxPersonal <= 0 {
		maxPersonal = defaultMaxPersonal
	}
	maxCommunity := cfg.MaxCommunity
	if maxCommunity <= 0 {
		maxCommunity = defaultMaxCommunity
	}
	return &Store{
		storage:      backing,
		maxPersonal:  maxPersonal,
		maxCommunity: maxCommunity,
		out:          out,
		now:          time.Now,
	}
}

// AddSearch records a resolved location in both lists. Records missing
// a city or state are dropped with a diagnostic; reverse lookups over
// water or failed resolutions land here and should not pollute history.
func (s *Store) AddSearch(city, state, country string) {
	if city == "" || state == "" {
		fmt.Fprintln(s.out, "warning: search not saved: missing city or state")
		return
	}

	record := types.SearchRecord{
		City:        city,
		State:       state,
		Country:     country,
		Timestamp:   s.now(),
		DisplayName: types.FormatDisplayName(city, state, country),
	}

	searches := s.Personal()
	deduped := searches[:0]
	for _, existing := range searches {
		if existing.Key() != record.Key() {
			deduped = append(deduped, existing)
		}
	}
	searches = append([]types.SearchRecord{record}, deduped...)
	if len(searches) > s.maxPersonal {
		searches = searches[:s.maxPersonal]
	}
	s.persist(personalKey, searches)

	s.addCommunity(record)
}

func (s *Store) addCommunity(record types.SearchRecord) {
	community := s.Community()
	entry := types.CommunityRecord{
		ID:          uuid.NewString(),
		City:        record.City,
		State:       record.State,
		Country:     record.Country,
		Timestamp:   record.Timestamp,
		DisplayName: record.DisplayName,
		SessionID:   s.SessionID(),
	}
	community = append([]types.CommunityRecord{entry}, community...)
	if len(community) > s.maxCommunity {
		community = community[:s.maxCommunity]
	}
	s.persist(communityKey, community)
}

// Personal returns the personal list, newest first. A corrupt or
// unreadable stored list is treated as empty.
func (s *Store) Personal() []types.SearchRecord {
	var searches []types.SearchRecord
	s.load(personalKey, &searches)
	return searches
}

// Community returns the shared list, newest first.
func (s *Store) Community() []types.CommunityRecord {
	var community []types.CommunityRecord
	s.load(communityKey, &community)
	return community
}

// Clear erases the personal list only. The community list is shared
// and survives.
func (s *Store) Clear() {
	if err := s.storage.Remove(personalKey); err != nil {
		fmt.Fprintf(s.out, "warning: clearing search history: %v\n", err)
	}
}

// SessionID returns the anonymous community-write token for this
// session. Generated once and reused for every write; never
// regenerated mid-session.
func (s *Store) SessionID() string {
	s.sessionOnce.Do(func() {
		s.sessionID = fmt.Sprintf("user_%s_%d", randomBase36(9), s.now().UnixMilli())
	})
	return s.sessionID
}

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(length int) string {
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = base36Chars[rand.Intn(len(base36Chars))]
	}
	return string(buf)
}

func (s *Store) load(key string, target any) {
	raw, ok, err := s.storage.Get(key)
	if err != nil {
		fmt.Fprintf(s.out, "warning: reading %s: %v\n", key, err)
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		fmt.Fprintf(s.out, "warning: parsing %s: %v\n", key, err)
	}
}

func (s *Store) persist(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		fmt.Fprintf(s.out, "warning: encoding %s: %v\n", key, err)
		return
	}
	if err := s.storage.Set(key, string(data)); err != nil {
		fmt.Fprintf(s.out, "warning: saving %s: %v\n", key, err)
	}
}
