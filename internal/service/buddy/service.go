package buddy

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oggyb/gym-buddy/internal/app"
	"github.com/oggyb/gym-buddy/internal/calendar"
	"github.com/oggyb/gym-buddy/internal/domain"
	svcErr "github.com/oggyb/gym-buddy/internal/errors"
	"github.com/oggyb/gym-buddy/internal/lifecycle"
	"github.com/oggyb/gym-buddy/internal/metrics"
	"github.com/oggyb/gym-buddy/internal/recommend"
	"github.com/oggyb/gym-buddy/internal/repository"
	"github.com/oggyb/gym-buddy/internal/schedule"
	"github.com/oggyb/gym-buddy/internal/scoring"
	"github.com/oggyb/gym-buddy/internal/search"
	"github.com/oggyb/gym-buddy/internal/utils/keylock"
)

const defaultMessagePage = 20

// Service implements the buddy gRPC API on top of the engine packages,
// the repositories and the Redis cache.
type Service struct {
	appCtx       *app.AppContext
	profileRepo  *repository.ProfileRepository
	decisionRepo *repository.DecisionRepository
	chatRepo     *repository.ChatRepository
	store        *repository.Store
	lifecycle    *lifecycle.Lifecycle
	finder       *schedule.Finder
	locks        *keylock.Locker
}

var _ BuddyServiceServer = (*Service)(nil)

// NewBuddyService creates the service with dependencies from AppContext:
//   - DB connection (repositories and the lifecycle store)
//   - RedisCache for counters and recommendation lists
//   - Policy and Now for the match lifecycle
func NewBuddyService(appCtx *app.AppContext) *Service {
	store := repository.NewStore(appCtx.DB)
	return &Service{
		appCtx:       appCtx,
		profileRepo:  repository.NewProfileRepository(appCtx.DB),
		decisionRepo: store.Decisions,
		chatRepo:     store.Chats,
		store:        store,
		lifecycle:    lifecycle.New(store, appCtx.Policy, lifecycle.WithClock(appCtx.Now)),
		finder:       schedule.NewFinder(appCtx.Now),
		locks:        keylock.New(),
	}
}

// GetRecommendations returns the best candidates the user has not decided on yet.
//
// Cache-first strategy:
//  1. Reads the ranked id list from Redis (reco:userID).
//  2. On a miss, ranks the whole pool and stores the ids with the configured TTL.
//  3. Either way candidates are rescored from the current snapshot and
//     already-decided targets are dropped.
func (s *Service) GetRecommendations(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req recommendationsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	s.appCtx.Logger.Debug("GetRecommendations called", "user", req.UserID, "limit", req.Limit)

	limit := req.Limit
	if limit <= 0 {
		limit = s.appCtx.Config.Reco.Limit
	}

	snap, err := s.profileRepo.LoadProfiles(ctx, req.UserID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	decisions, err := s.decisionRepo.DecisionsBy(ctx, req.UserID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	engine := scoring.NewEngine(snap.Facilities)
	ranker := recommend.NewRanker(engine)

	ids, cached, err := s.appCtx.RedisCache.GetRecommendations(ctx, req.UserID)
	if err != nil {
		s.appCtx.Logger.Warn("reco cache read failed", "user", req.UserID, "err", err)
	}

	var ranked []recommend.Scored
	if cached {
		pool := make([]domain.User, 0, len(ids))
		for _, id := range ids {
			if u, ok := snap.UserByID(id); ok {
				pool = append(pool, u)
			}
		}
		ranked = ranker.Recommend(snap.CurrentUser, pool, decisions, len(snap.Users))
	} else {
		ranked = ranker.Recommend(snap.CurrentUser, snap.Users, decisions, len(snap.Users))
		rankedIDs := make([]string, len(ranked))
		for i, sc := range ranked {
			rankedIDs[i] = sc.User.ID
		}
		if err := s.appCtx.RedisCache.SetRecommendations(ctx, req.UserID, rankedIDs); err != nil {
			s.appCtx.Logger.Warn("reco cache write failed", "user", req.UserID, "err", err)
		}
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	scores := make([]float64, len(ranked))
	for i, sc := range ranked {
		scores[i] = sc.Score
	}
	metrics.ObserveScores(scores)

	s.appCtx.Logger.Debug("GetRecommendations result", "count", len(ranked), "cached", cached)
	return encode(map[string]any{
		"recommendations": candidateList(ranked),
		"cached":          cached,
	})
}

// PutDecision records a like or pass and reports whether the pair is matched.
//
// Behavior:
//   - Both users must exist; a user cannot decide on themself.
//   - Every decision is appended, repeats included.
//   - Drops the actor's cached recommendations and the affected like counter.
//
// Example:
//
//	svc.PutDecision(ctx, {"user_id": "me", "target_id": "u_2", "value": "like"})
func (s *Service) PutDecision(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req decisionRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	s.appCtx.Logger.Debug("PutDecision called", "user", req.UserID, "target", req.TargetID, "value", req.Value)

	unlock := s.locks.LockPair(req.UserID, req.TargetID)
	defer unlock()

	for _, id := range []string{req.UserID, req.TargetID} {
		if _, err := s.profileRepo.GetUser(ctx, id); err != nil {
			return nil, svcErr.Map(err)
		}
	}

	value := domain.DecisionValue(req.Value)
	res, err := s.lifecycle.RecordDecision(ctx, req.UserID, req.TargetID, value)
	if err != nil {
		s.appCtx.Logger.Error("RecordDecision failed", "err", err)
		return nil, svcErr.Map(err)
	}
	metrics.ObserveDecision(req.Value, res.NewMatch)

	// a like changes the target's counter, a pass may hide a liker of the actor
	countOwner := req.TargetID
	if value == domain.DecisionPass {
		countOwner = req.UserID
	}
	if err := s.appCtx.RedisCache.InvalidateLikeCount(ctx, countOwner); err != nil {
		s.appCtx.Logger.Warn("like count invalidation failed", "user", countOwner, "err", err)
	}
	if err := s.appCtx.RedisCache.InvalidateRecommendations(ctx, req.UserID); err != nil {
		s.appCtx.Logger.Warn("reco cache invalidation failed", "user", req.UserID, "err", err)
	}

	out := map[string]any{
		"decision_id": res.Decision.ID,
		"matched":     res.Match != nil,
		"new_match":   res.NewMatch,
	}
	if res.Match != nil {
		out["match_id"] = res.Match.ID
	}
	return encode(out)
}

// CountLikedYou returns how many distinct users liked the user.
// Cache-first strategy:
//  1. Attempts to read from Redis (likes:count:userID).
//  2. On a miss, counts in the DB (users the recipient passed are excluded).
//  3. On DB fetch, updates Redis with a 1h TTL.
func (s *Service) CountLikedYou(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req userRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	s.appCtx.Logger.Debug("CountLikedYou called", "user", req.UserID)

	if n, ok, err := s.appCtx.RedisCache.GetLikeCount(ctx, req.UserID); err == nil && ok {
		return encode(map[string]any{"count": n, "cached": true})
	}

	// fallback: DB
	count, err := s.decisionRepo.CountLikers(ctx, req.UserID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	_ = s.appCtx.RedisCache.SetLikeCount(ctx, req.UserID, count)

	return encode(map[string]any{"count": count, "cached": false})
}

// SearchUsers filters profiles by level, weekday, chain, location and free
// text, scored against the user like recommendations.
func (s *Service) SearchUsers(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req searchRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	snap, err := s.profileRepo.LoadProfiles(ctx, req.UserID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	results := search.Filter(snap, search.Criteria{
		Level:          req.Level,
		Weekday:        req.Weekday,
		ChainID:        req.ChainID,
		RegionCode:     req.RegionCode,
		DepartmentCode: req.DepartmentCode,
		City:           req.City,
		Text:           req.Text,
	}, scoring.NewEngine(snap.Facilities))

	s.appCtx.Logger.Debug("SearchUsers result", "user", req.UserID, "count", len(results))
	return encode(map[string]any{"results": candidateList(results)})
}

// UpdateProfile saves the editable profile fields and returns the profile.
//
// Behavior:
//   - Omitted fields keep their value; favorites replace the saved list.
//   - Every cached recommendation list is dropped, since the profile may
//     move in anyone's ranking.
func (s *Service) UpdateProfile(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req updateProfileRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	s.appCtx.Logger.Debug("UpdateProfile called", "user", req.UserID)

	u, err := s.profileRepo.UpdateProfile(ctx, req.UserID, domain.ProfileUpdate{
		Name:             req.Name,
		PhotoURL:         req.PhotoURL,
		Bio:              req.Bio,
		BirthDate:        req.BirthDate,
		Level:            req.Level,
		Goal:             req.Goal,
		AvailabilityMask: req.AvailabilityMask,
		RegionCode:       req.RegionCode,
		DepartmentCode:   req.DepartmentCode,
		City:             req.City,
		Favorites:        req.Favorites,
	})
	if err != nil {
		return nil, svcErr.Map(err)
	}

	if err := s.appCtx.RedisCache.InvalidateAllRecommendations(ctx); err != nil {
		s.appCtx.Logger.Warn("reco cache invalidation failed", "err", err)
	}
	return encode(map[string]any{"profile": profileFields(u)})
}

// ListMatches returns the user's active matches, newest first.
func (s *Service) ListMatches(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req userRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	matches, err := s.lifecycle.Matches(ctx, req.UserID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	list := make([]any, 0, len(matches))
	for _, m := range matches {
		partnerID := m.Partner(req.UserID)
		item := map[string]any{
			"match_id":   m.ID,
			"partner_id": partnerID,
			"created_at": formatTime(m.CreatedAt),
		}
		if p, err := s.profileRepo.GetUser(ctx, partnerID); err == nil {
			item["partner_name"] = p.Name
			item["partner_photo_url"] = p.PhotoURL
		}
		list = append(list, item)
	}
	return encode(map[string]any{"matches": list})
}

// DeactivateMatch archives one of the user's matches. Archiving twice is a no-op.
func (s *Service) DeactivateMatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req matchRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	s.appCtx.Logger.Debug("DeactivateMatch called", "user", req.UserID, "match", req.MatchID)

	m, err := s.matchForUser(ctx, req.MatchID, req.UserID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	unlock := s.locks.LockPair(m.UserA, m.UserB)
	defer unlock()
	if err := s.lifecycle.Deactivate(ctx, m.ID); err != nil {
		return nil, svcErr.Map(err)
	}
	return encode(map[string]any{"match_id": m.ID, "active": false})
}

// OpenChat returns the thread of a match, creating it on first use.
//
// Behavior:
//   - With match_id, the user must be part of that match.
//   - With partner_id only, an active match is ensured first (as when
//     starting a conversation from a profile).
func (s *Service) OpenChat(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req openChatRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	s.appCtx.Logger.Debug("OpenChat called", "user", req.UserID, "match", req.MatchID, "partner", req.PartnerID)

	var (
		m   domain.Match
		th  domain.ChatThread
		err error
	)
	if req.MatchID != "" {
		if m, err = s.matchForUser(ctx, req.MatchID, req.UserID); err != nil {
			return nil, svcErr.Map(err)
		}
		unlock := s.locks.LockPair(m.UserA, m.UserB)
		th, err = s.lifecycle.EnsureChatThread(ctx, m.ID)
		unlock()
	} else {
		if _, err := s.profileRepo.GetUser(ctx, req.PartnerID); err != nil {
			return nil, svcErr.Map(err)
		}
		unlock := s.locks.LockPair(req.UserID, req.PartnerID)
		var conv lifecycle.Conversation
		conv, err = s.lifecycle.OpenConversation(ctx, req.UserID, req.PartnerID)
		unlock()
		m, th = conv.Match, conv.Thread
		if err == nil && conv.NewMatch {
			metrics.MatchesTotal.Inc()
		}
	}
	if err != nil {
		return nil, svcErr.Map(err)
	}

	return encode(map[string]any{
		"thread_id":  th.ID,
		"match_id":   m.ID,
		"partner_id": m.Partner(req.UserID),
		"messages":   messageList(th.Messages),
	})
}

// SendMessage posts a text message. Blank text is rejected and archived
// matches are read-only.
func (s *Service) SendMessage(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req sendMessageRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(req.ThreadID)
	defer unlock()
	msg, err := s.lifecycle.SendMessage(ctx, req.ThreadID, req.UserID, req.Text)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return encode(map[string]any{"message": messageFields(msg)})
}

// ReactToMessage adds one to a reaction counter of a message.
func (s *Service) ReactToMessage(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req reactRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if _, err := s.threadForUser(ctx, req.ThreadID, req.UserID); err != nil {
		return nil, svcErr.Map(err)
	}

	count, err := s.lifecycle.React(ctx, req.ThreadID, req.MessageID, req.Symbol)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return encode(map[string]any{"message_id": req.MessageID, "symbol": req.Symbol, "count": count})
}

// ListMessages pages through a thread in append order.
// Supports cursor-based pagination with page_token.
func (s *Service) ListMessages(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req listMessagesRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	if _, err := s.threadForUser(ctx, req.ThreadID, req.UserID); err != nil {
		return nil, svcErr.Map(err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultMessagePage
	}
	msgs, nextToken, err := s.chatRepo.ListMessages(ctx, req.ThreadID, req.PageToken, limit)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	out := map[string]any{"messages": messageList(msgs)}
	if nextToken != nil {
		out["next_page_token"] = *nextToken
	}
	return encode(out)
}

// SuggestSessions lists the next common free slots of the user and a partner.
// Without facility_ids the facilities both users favor are preferred.
func (s *Service) SuggestSessions(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req sessionsRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	snap, err := s.profileRepo.LoadProfiles(ctx, req.UserID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	partner, ok := snap.UserByID(req.PartnerID)
	if !ok {
		return nil, svcErr.Map(domain.ErrUserNotFound)
	}

	preferred := req.FacilityIDs
	if len(preferred) == 0 {
		preferred = schedule.CommonFacilities(snap.CurrentUser, partner)
	}
	slots := s.finder.FindCommonSlots(snap.CurrentUser, partner, preferred, schedule.Options{
		HorizonDays: req.HorizonDays,
		MaxResults:  req.MaxResults,
	})
	metrics.SlotResults.Observe(float64(len(slots)))

	list := make([]any, len(slots))
	for i, sl := range slots {
		name := ""
		if f, ok := snap.FacilityByID(sl.FacilityID); ok {
			name = f.Name
		}
		list[i] = slotFields(sl, name)
	}
	s.appCtx.Logger.Debug("SuggestSessions result", "user", req.UserID, "partner", req.PartnerID, "count", len(slots))
	return encode(map[string]any{"slots": list})
}

// ProposeSession posts a session message describing a slot into a thread.
func (s *Service) ProposeSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req proposeRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	start, err := parseStart(req.Start)
	if err != nil {
		return nil, err
	}
	facility, err := s.profileRepo.GetFacility(ctx, req.FacilityID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	unlock := s.locks.Lock(req.ThreadID)
	defer unlock()
	slot := schedule.Slot{FacilityID: facility.ID, Start: start}
	msg, err := s.lifecycle.ProposeSession(ctx, req.ThreadID, req.UserID, slot, facility.Name)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return encode(map[string]any{"message": messageFields(msg)})
}

// ExportSession renders a calendar file for a session with a partner.
func (s *Service) ExportSession(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req exportRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	start, err := parseStart(req.Start)
	if err != nil {
		return nil, err
	}
	partner, err := s.profileRepo.GetUser(ctx, req.PartnerID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	facility, err := s.profileRepo.GetFacility(ctx, req.FacilityID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	ev := calendar.ForSession(schedule.Slot{FacilityID: facility.ID, Start: start}, facility, partner.Name)
	return encode(map[string]any{
		"file_name":    calendar.FileName,
		"content_type": calendar.ContentType,
		"ics":          calendar.Render(ev, s.appCtx.Now()),
	})
}

func (s *Service) matchForUser(ctx context.Context, matchID, userID string) (domain.Match, error) {
	m, err := s.store.GetMatch(ctx, matchID)
	if err != nil {
		return domain.Match{}, err
	}
	if !m.Involves(userID) {
		return domain.Match{}, domain.ErrNotParticipant
	}
	return m, nil
}

func (s *Service) threadForUser(ctx context.Context, threadID, userID string) (domain.ChatThread, error) {
	th, err := s.store.GetThread(ctx, threadID)
	if err != nil {
		return domain.ChatThread{}, err
	}
	if _, err := s.matchForUser(ctx, th.MatchID, userID); err != nil {
		return domain.ChatThread{}, err
	}
	return th, nil
}
