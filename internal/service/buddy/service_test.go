package buddy_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oggyb/gym-buddy/internal/app"
	"github.com/oggyb/gym-buddy/internal/availability"
	"github.com/oggyb/gym-buddy/internal/cache"
	"github.com/oggyb/gym-buddy/internal/config"
	"github.com/oggyb/gym-buddy/internal/db"
	"github.com/oggyb/gym-buddy/internal/lifecycle"
	"github.com/oggyb/gym-buddy/internal/metrics"
	"github.com/oggyb/gym-buddy/internal/server"
	"github.com/oggyb/gym-buddy/internal/service/buddy"
)

//
// Test helpers
//

// Wednesday afternoon; slot searches start at local midnight of this day.
var fixedNow = time.Date(2026, 10, 14, 15, 42, 0, 0, time.UTC)

// setupService spins up an in-memory SQLite DB, applies migrations,
// seeds db.SeedMinimalTestData, starts a miniredis, and wires everything
// into a buddy Service with a fixed clock and the mutual-like policy.
//
// Each test gets its own isolated DB + Redis.
func setupService(t *testing.T) (*buddy.Service, *app.AppContext) {
	t.Helper()

	// In-memory SQLite
	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	dbase, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))
	require.NoError(t, db.SeedMinimalTestData(dbase))

	// Fake Redis
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	cfg.Reco.CacheTTL = time.Minute
	cfg.Reco.Limit = 20

	redisCache := cache.NewRedisCache(cfg)
	log := slog.New(slog.NewTextHandler(io.Discard, nil)) // discard logs in tests

	appCtx := app.New(cfg, dbase, redisCache, log)
	appCtx.Policy = lifecycle.MutualLike
	appCtx.Now = func() time.Time { return fixedNow }
	return buddy.NewBuddyService(appCtx), appCtx
}

func req(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func str(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

func list(s *structpb.Struct, key string) []*structpb.Value {
	return s.GetFields()[key].GetListValue().GetValues()
}

func ids(values []*structpb.Value, key string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = str(v.GetStructValue(), key)
	}
	return out
}

func like(t *testing.T, svc *buddy.Service, from, to string) *structpb.Struct {
	t.Helper()
	resp, err := svc.PutDecision(context.Background(), req(t, map[string]any{"user_id": from, "target_id": to, "value": "like"}))
	require.NoError(t, err)
	return resp
}

// matchAndOpen makes u1 and u2 like each other and opens their thread.
func matchAndOpen(t *testing.T, svc *buddy.Service) (matchID, threadID string) {
	t.Helper()
	like(t, svc, "u1", "u2")
	resp := like(t, svc, "u2", "u1")
	matchID = str(resp, "match_id")
	require.NotEmpty(t, matchID)

	chat, err := svc.OpenChat(context.Background(), req(t, map[string]any{"user_id": "u1", "match_id": matchID}))
	require.NoError(t, err)
	return matchID, str(chat, "thread_id")
}

//
// Tests
//

// TestGetRecommendationsRanksAndCaches checks ordering and the Redis round trip.
// u2 shares u1's gym, level and hours; u3 lives in Lyon and trains at night.
func TestGetRecommendationsRanksAndCaches(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	resp, err := svc.GetRecommendations(ctx, req(t, map[string]any{"user_id": "u1"}))
	require.NoError(t, err)
	recos := list(resp, "recommendations")
	assert.Equal(t, []string{"u2", "u3"}, ids(recos, "user_id"))
	assert.False(t, resp.GetFields()["cached"].GetBoolValue())
	assert.InDelta(t, 1.0, recos[0].GetStructValue().GetFields()["score"].GetNumberValue(), 1e-9)

	resp, err = svc.GetRecommendations(ctx, req(t, map[string]any{"user_id": "u1", "limit": 1}))
	require.NoError(t, err)
	assert.True(t, resp.GetFields()["cached"].GetBoolValue())
	assert.Equal(t, []string{"u2"}, ids(list(resp, "recommendations"), "user_id"))

	// a decision drops the cache and the target disappears
	like(t, svc, "u1", "u2")
	resp, err = svc.GetRecommendations(ctx, req(t, map[string]any{"user_id": "u1"}))
	require.NoError(t, err)
	assert.False(t, resp.GetFields()["cached"].GetBoolValue())
	assert.Equal(t, []string{"u3"}, ids(list(resp, "recommendations"), "user_id"))

	_, err = svc.GetRecommendations(ctx, req(t, map[string]any{"user_id": "ghost"}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

// TestPutDecisionAndMutualLike ensures a match is created on the second like only.
func TestPutDecisionAndMutualLike(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	first := like(t, svc, "u1", "u2")
	assert.False(t, first.GetFields()["matched"].GetBoolValue())
	assert.True(t, strings.HasPrefix(str(first, "decision_id"), "s_"))

	second := like(t, svc, "u2", "u1")
	assert.True(t, second.GetFields()["matched"].GetBoolValue())
	assert.True(t, second.GetFields()["new_match"].GetBoolValue())

	// liking again keeps the single match
	third := like(t, svc, "u1", "u2")
	assert.True(t, third.GetFields()["matched"].GetBoolValue())
	assert.False(t, third.GetFields()["new_match"].GetBoolValue())
	assert.Equal(t, str(second, "match_id"), str(third, "match_id"))

	matches, err := svc.ListMatches(ctx, req(t, map[string]any{"user_id": "u1"}))
	require.NoError(t, err)
	items := list(matches, "matches")
	require.Len(t, items, 1)
	assert.Equal(t, "u2", str(items[0].GetStructValue(), "partner_id"))
	assert.Equal(t, "user2", str(items[0].GetStructValue(), "partner_name"))
}

func TestPutDecisionRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	cases := []struct {
		fields map[string]any
		code   codes.Code
	}{
		{map[string]any{"user_id": "u1", "target_id": "u1", "value": "like"}, codes.InvalidArgument},
		{map[string]any{"user_id": "u1", "target_id": "u2", "value": "maybe"}, codes.InvalidArgument},
		{map[string]any{"target_id": "u2", "value": "like"}, codes.InvalidArgument},
		{map[string]any{"user_id": "u1", "target_id": "ghost", "value": "pass"}, codes.NotFound},
	}
	for _, tc := range cases {
		_, err := svc.PutDecision(ctx, req(t, tc.fields))
		assert.Equal(t, tc.code, status.Code(err), "fields=%v", tc.fields)
	}
}

// TestCountLikedYouCache verifies like counts with cache and invalidation.
func TestCountLikedYouCache(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	like(t, svc, "u1", "u3")
	like(t, svc, "u1", "u3")
	like(t, svc, "u2", "u3")

	// First call → DB
	resp, err := svc.CountLikedYou(ctx, req(t, map[string]any{"user_id": "u3"}))
	require.NoError(t, err)
	assert.Equal(t, float64(2), resp.GetFields()["count"].GetNumberValue())
	assert.False(t, resp.GetFields()["cached"].GetBoolValue())

	// Second call → cache
	resp, err = svc.CountLikedYou(ctx, req(t, map[string]any{"user_id": "u3"}))
	require.NoError(t, err)
	assert.Equal(t, float64(2), resp.GetFields()["count"].GetNumberValue())
	assert.True(t, resp.GetFields()["cached"].GetBoolValue())

	// u3 passing u2 hides that liker
	_, err = svc.PutDecision(ctx, req(t, map[string]any{"user_id": "u3", "target_id": "u2", "value": "pass"}))
	require.NoError(t, err)
	resp, err = svc.CountLikedYou(ctx, req(t, map[string]any{"user_id": "u3"}))
	require.NoError(t, err)
	assert.Equal(t, float64(1), resp.GetFields()["count"].GetNumberValue())
}

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	cases := []struct {
		name   string
		fields map[string]any
		want   []string
	}{
		{"text", map[string]any{"text": "LYON"}, []string{"u3"}},
		{"level", map[string]any{"level": 1}, []string{"u2"}},
		{"weekday", map[string]any{"weekday": 0}, []string{"u2", "u3"}},
		{"city", map[string]any{"city": "Paris"}, []string{"u2"}},
		{"chain", map[string]any{"chain_id": "chain_fitnesspark"}, []string{"u3"}},
		{"none", map[string]any{"text": "marseille"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.fields["user_id"] = "u1"
			resp, err := svc.SearchUsers(ctx, req(t, tc.fields))
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(list(resp, "results"), "user_id"))
		})
	}

	_, err := svc.SearchUsers(ctx, req(t, map[string]any{"user_id": "u1", "weekday": 9}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestChatFlow(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	matchID, threadID := matchAndOpen(t, svc)

	// opening again returns the same thread
	again, err := svc.OpenChat(ctx, req(t, map[string]any{"user_id": "u2", "match_id": matchID}))
	require.NoError(t, err)
	assert.Equal(t, threadID, str(again, "thread_id"))
	assert.Equal(t, "u1", str(again, "partner_id"))

	sent, err := svc.SendMessage(ctx, req(t, map[string]any{"user_id": "u1", "thread_id": threadID, "text": "  On se voit demain ?  "}))
	require.NoError(t, err)
	msg := sent.GetFields()["message"].GetStructValue()
	assert.Equal(t, "On se voit demain ?", str(msg, "text"))
	assert.Equal(t, "text", str(msg, "type"))
	messageID := str(msg, "message_id")

	for i := 1; i <= 2; i++ {
		r, err := svc.ReactToMessage(ctx, req(t, map[string]any{"user_id": "u2", "thread_id": threadID, "message_id": messageID, "symbol": "👍"}))
		require.NoError(t, err)
		assert.Equal(t, float64(i), r.GetFields()["count"].GetNumberValue())
	}

	_, err = svc.SendMessage(ctx, req(t, map[string]any{"user_id": "u1", "thread_id": threadID, "text": "   "}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = svc.SendMessage(ctx, req(t, map[string]any{"user_id": "u3", "thread_id": threadID, "text": "salut"}))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	_, err = svc.ReactToMessage(ctx, req(t, map[string]any{"user_id": "u3", "thread_id": threadID, "message_id": messageID, "symbol": "👍"}))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	_, err = svc.ReactToMessage(ctx, req(t, map[string]any{"user_id": "u1", "thread_id": threadID, "message_id": "msg_nope", "symbol": "👍"}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	for i := 0; i < 2; i++ {
		_, err = svc.SendMessage(ctx, req(t, map[string]any{"user_id": "u2", "thread_id": threadID, "text": fmt.Sprintf("msg %d", i)}))
		require.NoError(t, err)
	}

	page, err := svc.ListMessages(ctx, req(t, map[string]any{"user_id": "u1", "thread_id": threadID, "limit": 2}))
	require.NoError(t, err)
	msgs := list(page, "messages")
	require.Len(t, msgs, 2)
	reactions := msgs[0].GetStructValue().GetFields()["reactions"].GetStructValue()
	assert.Equal(t, float64(2), reactions.GetFields()["👍"].GetNumberValue())
	token := str(page, "next_page_token")
	require.NotEmpty(t, token)

	page, err = svc.ListMessages(ctx, req(t, map[string]any{"user_id": "u1", "thread_id": threadID, "limit": 2, "page_token": token}))
	require.NoError(t, err)
	assert.Equal(t, []string{"msg 1"}, ids(list(page, "messages"), "text"))
	_, ok := page.GetFields()["next_page_token"]
	assert.False(t, ok)

	// archiving
	_, err = svc.DeactivateMatch(ctx, req(t, map[string]any{"user_id": "u3", "match_id": matchID}))
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	_, err = svc.DeactivateMatch(ctx, req(t, map[string]any{"user_id": "u1", "match_id": matchID}))
	require.NoError(t, err)
	_, err = svc.DeactivateMatch(ctx, req(t, map[string]any{"user_id": "u1", "match_id": matchID}))
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, req(t, map[string]any{"user_id": "u1", "thread_id": threadID, "text": "encore là ?"}))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	matches, err := svc.ListMatches(ctx, req(t, map[string]any{"user_id": "u1"}))
	require.NoError(t, err)
	assert.Empty(t, list(matches, "matches"))

	// history survives archiving
	page, err = svc.ListMessages(ctx, req(t, map[string]any{"user_id": "u2", "thread_id": threadID}))
	require.NoError(t, err)
	assert.Len(t, list(page, "messages"), 3)
}

func TestOpenChatWithPartner(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	matchesBefore := testutil.ToFloat64(metrics.MatchesTotal)

	resp, err := svc.OpenChat(ctx, req(t, map[string]any{"user_id": "u1", "partner_id": "u3"}))
	require.NoError(t, err)
	assert.NotEmpty(t, str(resp, "thread_id"))
	assert.Empty(t, list(resp, "messages"))
	assert.Equal(t, matchesBefore+1, testutil.ToFloat64(metrics.MatchesTotal))

	// reopening reuses the match
	again, err := svc.OpenChat(ctx, req(t, map[string]any{"user_id": "u3", "partner_id": "u1"}))
	require.NoError(t, err)
	assert.Equal(t, str(resp, "thread_id"), str(again, "thread_id"))
	assert.Equal(t, matchesBefore+1, testutil.ToFloat64(metrics.MatchesTotal))

	matches, err := svc.ListMatches(ctx, req(t, map[string]any{"user_id": "u3"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids(list(matches, "matches"), "partner_id"))

	_, err = svc.OpenChat(ctx, req(t, map[string]any{"user_id": "u1"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = svc.OpenChat(ctx, req(t, map[string]any{"user_id": "u1", "partner_id": "u1"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	_, err = svc.OpenChat(ctx, req(t, map[string]any{"user_id": "u1", "partner_id": "ghost"}))
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = svc.OpenChat(ctx, req(t, map[string]any{"user_id": "u1", "match_id": "m_404"}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

// TestUpdateProfile moves u3 from Lyon nights to u1's gym and hours.
func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, appCtx := setupService(t)

	_, err := svc.GetRecommendations(ctx, req(t, map[string]any{"user_id": "u1"}))
	require.NoError(t, err)
	_, err = svc.GetRecommendations(ctx, req(t, map[string]any{"user_id": "u2"}))
	require.NoError(t, err)
	n, err := appCtx.RedisCache.Client.Exists(ctx, "reco:u1", "reco:u2").Result()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	var day availability.Mask
	for d := 0; d < availability.Days; d++ {
		for slot := 16; slot < 40; slot++ {
			day.Set(d, slot)
		}
	}
	resp, err := svc.UpdateProfile(ctx, req(t, map[string]any{
		"user_id":           "u3",
		"bio":               "Moved to Paris",
		"birth_date":        "1994-03-02",
		"level":             1,
		"goal":              "Force",
		"availability_mask": availability.Encode(day),
		"region_code":       "IDF",
		"department_code":   "75",
		"city":              "Paris",
		"favorites":         []any{"gym_bf_bastille", "gym_bf_bastille", "gym_bf_montparnasse"},
	}))
	require.NoError(t, err)
	profile := resp.GetFields()["profile"].GetStructValue()
	assert.Equal(t, "user3", str(profile, "name"))
	assert.Equal(t, "Paris", str(profile, "city"))
	assert.Equal(t, "1994-03-02", str(profile, "birth_date"))
	assert.Equal(t, float64(1), profile.GetFields()["level"].GetNumberValue())
	assert.Len(t, list(profile, "favorites"), 2)

	n, err = appCtx.RedisCache.Client.Exists(ctx, "reco:u1", "reco:u2").Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	// u3 now ties u2 for u1
	recos, err := svc.GetRecommendations(ctx, req(t, map[string]any{"user_id": "u1"}))
	require.NoError(t, err)
	assert.False(t, recos.GetFields()["cached"].GetBoolValue())
	for _, v := range list(recos, "recommendations") {
		assert.InDelta(t, 1.0, v.GetStructValue().GetFields()["score"].GetNumberValue(), 1e-9)
	}

	bad := []map[string]any{
		{"bio": "no user"},
		{"user_id": "u3", "level": 4},
		{"user_id": "u3", "level": -1},
		{"user_id": "u3", "birth_date": "02/03/1994"},
		{"user_id": "u3", "availability_mask": "%%%"},
	}
	for _, fields := range bad {
		_, err = svc.UpdateProfile(ctx, req(t, fields))
		assert.Equal(t, codes.InvalidArgument, status.Code(err), fields)
	}

	_, err = svc.UpdateProfile(ctx, req(t, map[string]any{"user_id": "ghost", "bio": "x"}))
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = svc.UpdateProfile(ctx, req(t, map[string]any{"user_id": "u3", "favorites": []any{"gym_404"}}))
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestSuggestProposeAndExportSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)
	_, threadID := matchAndOpen(t, svc)

	resp, err := svc.SuggestSessions(ctx, req(t, map[string]any{"user_id": "u1", "partner_id": "u2"}))
	require.NoError(t, err)
	slots := list(resp, "slots")
	require.Len(t, slots, 5)
	first := slots[0].GetStructValue()
	assert.Equal(t, "gym_bf_bastille", str(first, "facility_id"))
	assert.Equal(t, "Basic-Fit Bastille", str(first, "facility_name"))
	assert.Equal(t, "2026-10-14T08:00:00Z", str(first, "start"))
	assert.Equal(t, "2026-10-14T09:30:00Z", str(first, "end"))
	assert.Equal(t, "Mer 08:00 14/10/2026", str(first, "label"))
	assert.Equal(t, "2026-10-14T12:00:00Z", str(slots[4].GetStructValue(), "start"))

	resp, err = svc.SuggestSessions(ctx, req(t, map[string]any{"user_id": "u1", "partner_id": "u2", "facility_ids": []any{"gym_bf_montparnasse"}, "max_results": 2}))
	require.NoError(t, err)
	require.Len(t, list(resp, "slots"), 2)
	assert.Equal(t, "gym_bf_montparnasse", str(list(resp, "slots")[0].GetStructValue(), "facility_id"))

	resp, err = svc.SuggestSessions(ctx, req(t, map[string]any{"user_id": "u1", "partner_id": "u3"}))
	require.NoError(t, err)
	assert.Empty(t, list(resp, "slots"))

	proposed, err := svc.ProposeSession(ctx, req(t, map[string]any{
		"user_id": "u1", "thread_id": threadID, "facility_id": "gym_bf_bastille", "start": "2026-10-14T08:00:00Z",
	}))
	require.NoError(t, err)
	msg := proposed.GetFields()["message"].GetStructValue()
	assert.Equal(t, "session", str(msg, "type"))
	assert.Equal(t, "Séance proposée à Basic-Fit Bastille : Mer 08:00 14/10/2026 – 09:30", str(msg, "text"))

	_, err = svc.ProposeSession(ctx, req(t, map[string]any{
		"user_id": "u1", "thread_id": threadID, "facility_id": "gym_bf_bastille", "start": "demain",
	}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	exported, err := svc.ExportSession(ctx, req(t, map[string]any{
		"user_id": "u1", "partner_id": "u2", "facility_id": "gym_bf_bastille", "start": "2026-10-14T08:00:00Z",
	}))
	require.NoError(t, err)
	assert.Equal(t, "seance.ics", str(exported, "file_name"))
	ics := str(exported, "ics")
	assert.Contains(t, ics, "DTSTART:20261014T080000Z\r\n")
	assert.Contains(t, ics, "DTEND:20261014T093000Z\r\n")
	assert.Contains(t, ics, "SUMMARY:Séance à Basic-Fit Bastille\r\n")
	assert.Contains(t, ics, "DESCRIPTION:Séance proposée avec user2\r\n")
	assert.Contains(t, ics, "LOCATION:Basic-Fit Bastille, Paris\r\n")
	assert.Contains(t, ics, fmt.Sprintf("UID:sess-%d@gogymtogether", fixedNow.UnixMilli()))
}

// TestGRPCRoundTrip serves the registrar over bufconn and calls it with the client.
func TestGRPCRoundTrip(t *testing.T) {
	_, appCtx := setupService(t)

	lis := bufconn.Listen(1 << 20)
	srv := server.NewGRPCServer(appCtx.Logger, buddy.NewRegistrar(appCtx))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := buddy.NewClient(conn)

	resp, err := client.Call(ctx, buddy.MethodGetRecommendations, req(t, map[string]any{"user_id": "u2"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u3"}, ids(list(resp, "recommendations"), "user_id"))

	_, err = client.Call(ctx, buddy.MethodListMatches, req(t, map[string]any{}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.Call(ctx, "NoSuchMethod", req(t, map[string]any{"user_id": "u2"}))
	assert.Equal(t, codes.Unimplemented, status.Code(err))
}
