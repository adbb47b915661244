package mint

import (
	"context"
	"sync"

	"github.com/questx-lab/nftgallery/internal/common"
	"github.com/questx-lab/nftgallery/internal/model"
	"github.com/questx-lab/nftgallery/pkg/errorx"
	"github.com/questx-lab/nftgallery/pkg/xcontext"
)

// ProfileSession caches the profile of the current identity. The profile is
// fetched once per identity change and kept until the next change.
type ProfileSession struct {
	fetcher ProfileFetcher

	mutex    sync.RWMutex
	username string
	profile  *model.UserProfile
	err      error

	// generation is bumped on every identity change so that a slow fetch of
	// an old identity cannot overwrite the state of the new one.
	generation uint64
}

func NewProfileSession(fetcher ProfileFetcher) *ProfileSession {
	return &ProfileSession{fetcher: fetcher}
}

// OnIdentityChange fetches the profile of username if it differs from the
// current identity. An empty username clears the session. The fetch is not
// retried on failure.
func (s *ProfileSession) OnIdentityChange(ctx context.Context, username string) {
	s.mutex.Lock()
	if username == s.username {
		s.mutex.Unlock()
		return
	}

	s.generation++
	generation := s.generation
	s.username = username
	s.profile = nil
	s.err = nil
	s.mutex.Unlock()

	if username == "" {
		return
	}

	profile, err := s.fetcher.FetchProfile(ctx, username)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot fetch profile of %s: %v", username, err)
		common.PromCounters[common.ProfileFetchTotal].WithLabelValues("failure").Inc()
		err = errorx.New(errorx.ProfileFetchFailed, "Failed to fetch user data")
	} else {
		common.PromCounters[common.ProfileFetchTotal].WithLabelValues("success").Inc()
		profile.Username = username
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.generation != generation {
		return
	}

	s.profile = profile
	s.err = err
}

// Current returns the profile of the current identity. Both results are nil
// if no identity is set or the fetch has not finished yet.
func (s *ProfileSession) Current() (*model.UserProfile, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.profile, s.err
}

func (s *ProfileSession) Username() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.username
}
